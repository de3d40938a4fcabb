package output

import (
	"os"

	"golang.org/x/term"
)

// ttyOverride forces IsTTY's answer when non-nil.
var ttyOverride *bool

// IsTTY reports whether stdout and stdin are attached to a terminal.
func IsTTY() bool {
	if ttyOverride != nil {
		return *ttyOverride
	}
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// ForceTTY overrides terminal detection and returns a func that restores it.
func ForceTTY(v bool) func() {
	prev := ttyOverride
	ttyOverride = &v
	return func() { ttyOverride = prev }
}
