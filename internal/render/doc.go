// Package render formats map packages for the terminal using lipgloss.
//
// Output is plain text when stdout is not a terminal, which keeps it
// usable in pipes and tests.
package render
