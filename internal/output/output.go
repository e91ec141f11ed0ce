// Package output provides terminal output formatting utilities for the
// commitlog CLI. This package is designed to have minimal dependencies
// to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ariel-frischer/commitlog/internal/conventional"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// NewCloneSpinner returns a started spinner shown while a remote
// repository is cloned, or nil when stdout is not a terminal. Callers
// stop it with StopSpinner.
func NewCloneSpinner(url string) *spinner.Spinner {
	if !IsTerminal() {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Cloning %s...", url)
	s.Start()
	return s
}

// StopSpinner stops a spinner started by NewCloneSpinner. Safe with nil.
func StopSpinner(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}

// PrintSummary writes a per-category commit count summary after a
// successful run. Breaking membership makes the counts overlap, so the
// total line reports distinct commits instead of the column sum.
func PrintSummary(w io.Writer, cs *conventional.Changeset) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s %d commits\n", cyan("Changelog:"), cs.Len())
	for _, cat := range conventional.Categories() {
		if n := len(cs.Group(cat)); n > 0 {
			fmt.Fprintf(w, "  %s %d\n", dim(cat.String()+":"), n)
		}
	}
}

// PrintSuccess prints a colored success message with the output target.
func PrintSuccess(w io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", green("✓"), cyan(message))
}
