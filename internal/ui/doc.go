// Package ui provides theme and color support for the console output. It
// defines color schemes, ANSI escape code accessors and the lipgloss style of
// section banners, so that presentation code never hard-codes escape
// sequences.
package ui
