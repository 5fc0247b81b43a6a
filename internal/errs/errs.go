// Package errs defines the two recoverable error classes that the CLI
// catches at the top level. Everything else propagates as a fatal error.
package errs

import (
	"errors"
	"fmt"
)

// InputError marks malformed or conflicting user-supplied arguments and
// flags: year/day out of range, a day hint without a year, incompatible
// flag combinations.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// Inputf builds an InputError from a format string.
func Inputf(format string, args ...interface{}) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// ConfigError marks missing required configuration, such as an absent
// session token when a network call is needed.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// Configf builds a ConfigError from a format string.
func Configf(format string, args ...interface{}) error {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// Handled reports whether err is one of the recoverable classes. When it
// is, the returned message should be printed and the command should exit
// non-zero without a stack trace.
func Handled(err error) (string, bool) {
	var in *InputError
	if errors.As(err, &in) {
		return in.Message, true
	}
	var cfg *ConfigError
	if errors.As(err, &cfg) {
		return cfg.Message, true
	}
	return "", false
}
