// Package progress provides terminal capability detection and a
// spinner display for long directory scans. All progress output goes
// to stderr so results on stdout stay pipeable.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	// IsTTY indicates stderr is an interactive terminal
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal renders non-ASCII symbols
	SupportsUnicode bool
	// Width is the terminal width in columns, 0 when unknown
	Width int
}

// ProgressSymbols is the symbol set matching the terminal's abilities.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities inspects stderr plus the NO_COLOR and
// RESTYLE_ASCII environment switches.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("RESTYLE_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
