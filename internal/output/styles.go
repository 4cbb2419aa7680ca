/*
Copyright © 2025 Stackaroo Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package output

import (
	"os"

	"charm.land/lipgloss/v2"
)

// Styles contains the styles for rendering command results
type Styles struct {
	Header  lipgloss.Style
	Key     lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Whether colours are enabled
	UseColour bool
}

// NewStyles creates result styles. Without colour every style renders text unchanged.
func NewStyles(useColour bool) *Styles {
	s := &Styles{UseColour: useColour}

	if !useColour {
		s.Header = lipgloss.NewStyle()
		s.Key = lipgloss.NewStyle()
		s.Subtle = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Error = lipgloss.NewStyle()
		return s
	}

	hasDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	var (
		headerText  string
		keyText     string
		subtleText  string
		successText string
		warningText string
		errorText   string
	)

	if hasDark {
		headerText = "12"  // Bright Blue
		keyText = "14"     // Cyan
		subtleText = "8"   // Dark Grey
		successText = "10" // Green
		warningText = "11" // Yellow
		errorText = "9"    // Red
	} else {
		headerText = "4"  // Blue
		keyText = "6"     // Cyan
		subtleText = "8"  // Grey
		successText = "2" // Green
		warningText = "3" // Yellow/Brown
		errorText = "1"   // Red
	}

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(headerText))

	s.Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color(keyText))

	s.Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(subtleText))

	s.Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color(successText)).
		Bold(true)

	s.Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color(warningText)).
		Bold(true)

	s.Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color(errorText)).
		Bold(true)

	return s
}

// ShouldUseColour determines if colour output should be used
func ShouldUseColour() bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	if term == "dumb" || term == "" {
		return false
	}

	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
