package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how the dashboard reaches the user.
type OutputMode int

const (
	// OutputModePlain prints the settled view once, without styling.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints the settled view once, with styling.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// String returns the mode name used in logs.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode for stdout. forcePlain wins over everything,
// a non-terminal or a dumb terminal is plain, and CI gets styled output
// rather than an interactive program.
func DetectOutputMode(forcePlain bool) OutputMode {
	return detectOutputMode(forcePlain, term.IsTerminal(int(os.Stdout.Fd())), os.LookupEnv)
}

func detectOutputMode(forcePlain, isTTY bool, lookupEnv func(string) (string, bool)) OutputMode {
	if forcePlain || !isTTY {
		return OutputModePlain
	}
	if v, ok := lookupEnv("TERM"); ok && v == "dumb" {
		return OutputModePlain
	}
	if v, ok := lookupEnv("CI"); ok && v != "" && v != "false" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the stdout width, or defaultWidth off a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// ColorDisabled reports whether NO_COLOR is set.
func ColorDisabled(lookupEnv func(string) (string, bool)) bool {
	v, ok := lookupEnv("NO_COLOR")
	return ok && v != ""
}
