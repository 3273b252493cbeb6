// Package color decides whether CLI output is colored and holds the styles.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Profile reports whether the environment and flags allow color.
//
// Color is disabled when any of:
//   - NO_COLOR env is set (any value, per https://no-color.org)
//   - CLICOLOR=0
//   - TERM=dumb
//   - noColorFlag is true (--no-color CLI flag)
func Profile(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" {
		return false
	}

	return os.Getenv("TERM") != "dumb"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// Enabled reports whether output written to f should be colored.
func Enabled(f *os.File, noColorFlag bool) bool {
	return Profile(noColorFlag) && IsTerminal(f)
}

// Theme holds lipgloss styles for CLI output.
type Theme struct {
	Error   lipgloss.Style
	Hint    lipgloss.Style
	Header  lipgloss.Style
	Name    lipgloss.Style
	Muted   lipgloss.Style
	Pass    lipgloss.Style
	Warning lipgloss.Style
	Skip    lipgloss.Style
}

// NewTheme creates a Theme. When color is false, all styles are empty (no ANSI codes).
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // bright red
		Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // bright yellow
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Name:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")), // gray
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Skip:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
