package locate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

// TerminalPrompter reads answers from an input stream, normally stdin.
type TerminalPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminalPrompter builds a prompter over stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return NewTerminalPrompterIO(os.Stdin, os.Stdout)
}

// NewTerminalPrompterIO builds a prompter over the given streams.
func NewTerminalPrompterIO(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{reader: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question; an empty line takes the default.
func (p *TerminalPrompter) Confirm(prompt string, def bool) bool {
	suffix := "[Y/n]"
	if !def {
		suffix = "[y/N]"
	}
	fmt.Fprintf(p.out, "%s %s ", promptStyle.Render(prompt), suffix)

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ReadLine reads one trimmed line, returning "" at end of input.
func (p *TerminalPrompter) ReadLine(prompt string) string {
	fmt.Fprint(p.out, promptStyle.Render(prompt))
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
