package submit

import "strings"

// Classification buckets the grading service's response. Only Correct
// drives state changes; the rest are distinguished for display.
type Classification int

const (
	Other Classification = iota
	Correct
	Incorrect
	AlreadySolved
	TooRecent
)

func (c Classification) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case AlreadySolved:
		return "already solved"
	case TooRecent:
		return "too recent"
	default:
		return "other"
	}
}

// Result is the classified submission response.
type Result struct {
	// Raw is the response message trimmed of trailing link fragments
	// and of anything after the first blank line.
	Raw            string
	Classification Classification
}

// Leading sentences the grading service is known to respond with.
const (
	phraseCorrect             = "That's the right answer!"
	phraseIncorrect           = "That's not the right answer"
	phraseTooRecent           = "You gave an answer too recently"
	phraseAlreadyOnWrongLevel = "You don't seem to be solving the right level"
)

// Classify pattern-matches the response text's leading sentence and trims
// the message for display.
func Classify(responseText string) Result {
	raw := trimMessage(responseText)

	var c Classification
	switch {
	case strings.HasPrefix(raw, phraseCorrect):
		c = Correct
	case strings.HasPrefix(raw, phraseIncorrect):
		c = Incorrect
	case strings.HasPrefix(raw, phraseTooRecent):
		c = TooRecent
	case strings.HasPrefix(raw, phraseAlreadyOnWrongLevel):
		c = AlreadySolved
	default:
		c = Other
	}
	return Result{Raw: raw, Classification: c}
}

// trimMessage cuts the text at the first blank line and at the first
// bracketed link fragment, then trims whitespace.
func trimMessage(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "\n\n"); i >= 0 {
		text = text[:i]
	}
	if i := strings.Index(text, "[["); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
