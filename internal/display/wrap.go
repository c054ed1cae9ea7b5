package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth. Existing line breaks are preserved.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// JoinNames renders a list for user output: "a, b, c".
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}
