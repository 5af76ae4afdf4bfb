package display

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the terminal width command responses wrap to.
const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth. Existing newlines and ANSI escape
// sequences are preserved.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// ListItem formats one entry of an indented list. Long entries wrap with
// a hanging indent so continuation lines sit under the entry text.
func ListItem(s string) string {
	wrapped := wordwrap.String(s, DefaultWidth-4)
	return "  " + strings.ReplaceAll(wrapped, "\n", "\n    ")
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
