package logger

import (
	"github.com/fatih/color"
)

// colorScheme defines consistent colors for verification results.
// Green: passed blocks and clean summaries
// Red: failed blocks and aborts
// Yellow: suppressed parse errors and skipped blocks
// Cyan: locations and identifiers
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	dim     *color.Color
}

// newColorScheme creates the standard color scheme.
func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		dim:     color.New(color.FgHiBlack),
	}
}
