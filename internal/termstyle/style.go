package termstyle

import (
	"os"

	"golang.org/x/term"
)

const (
	reset    = "\x1b[0m"
	boldCyan = "\x1b[1;36m"
	boldRed  = "\x1b[1;31m"
)

// Style decides how highlighted text is rendered.
type Style struct {
	Color bool
}

// Detect enables colour when f is a terminal and NO_COLOR is unset.
func Detect(f *os.File) Style {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return Style{}
	}
	return Style{Color: term.IsTerminal(int(f.Fd()))}
}

// Highlight marks s as the default entry.
func (s Style) Highlight(text string) string {
	if !s.Color {
		return text + " (default)"
	}
	return boldCyan + text + reset
}

// ErrorPrefix is printed ahead of fatal messages.
func (s Style) ErrorPrefix() string {
	if !s.Color {
		return "ERROR:"
	}
	return boldRed + "ERROR:" + reset
}
