// Package ansii decorates terminal output with ANSI escape sequences.
package ansii

import (
	"io"
	"os"

	"golang.org/x/term"

	"xwinpong/internal/pong"
)

type ANSI string

const (
	reset  ANSI = "\033[0m"
	bold   ANSI = "\033[1m"
	yellow ANSI = "\033[33m"
	cyan   ANSI = "\033[36m"
)

type style struct {
	Reset ANSI
	Bold  ANSI
}

type color struct {
	Yellow ANSI
	Cyan   ANSI
}

var (
	Styles = style{Bold: bold, Reset: reset}
	Colors = color{Yellow: yellow, Cyan: cyan}
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Paint wraps s in the given styles. Nothing is added when styled is false.
func Paint(s string, styled bool, styles ...ANSI) string {
	if !styled || len(styles) == 0 {
		return s
	}
	var prefix string
	for _, st := range styles {
		prefix += string(st)
	}
	return prefix + s + string(Styles.Reset)
}

// Announce writes the winner line, e.g. "Left wins!".
func Announce(w io.Writer, outcome pong.Outcome, styled bool) error {
	c := Colors.Cyan
	if outcome == pong.RightWins {
		c = Colors.Yellow
	}
	_, err := io.WriteString(w, Paint(outcome.String(), styled, Styles.Bold, c)+"\n")
	return err
}
