package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ScanDisplay shows a spinner while a directory walk runs, counting
// files as they are found. Off-terminal runs stay silent so piped
// output is clean.
type ScanDisplay struct {
	capabilities TerminalCapabilities
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
	found        int
}

// NewScanDisplay creates a display for the given terminal capabilities.
func NewScanDisplay(caps TerminalCapabilities) *ScanDisplay {
	return &ScanDisplay{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins the spinner with a label naming what is being scanned.
func (d *ScanDisplay) Start(label string) {
	if !d.capabilities.IsTTY {
		return
	}
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
	)
	d.spinner.Writer = os.Stderr
	d.spinner.Suffix = " " + label
	d.spinner.Start()
}

// Found records one more matched file on the spinner's suffix.
func (d *ScanDisplay) Found(label string) {
	d.found++
	if d.spinner != nil {
		d.spinner.Suffix = fmt.Sprintf(" %s (%d files)", label, d.found)
	}
}

// Count returns how many files have been recorded so far.
func (d *ScanDisplay) Count() int {
	return d.found
}

// Stop halts the spinner, leaving the line clear for real output.
func (d *ScanDisplay) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// Summary stops the spinner and prints the final count with a
// checkmark. Off-terminal it prints nothing.
func (d *ScanDisplay) Summary(label string) {
	d.Stop()
	if !d.capabilities.IsTTY {
		return
	}
	mark := checkmark(d.symbols, d.capabilities.SupportsColor)
	fmt.Fprintf(os.Stderr, "%s %s: %d files\n", mark, label, d.found)
}

// Fail stops the spinner and prints a failure line.
func (d *ScanDisplay) Fail(label string, err error) {
	d.Stop()
	if !d.capabilities.IsTTY {
		return
	}
	mark := failureMark(d.symbols, d.capabilities.SupportsColor)
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", mark, label, err)
}
