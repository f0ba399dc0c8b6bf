package ui

import (
	"os"
	"sync"
)

// Theme defines a color scheme for console output.
// Each field contains an ANSI escape code for the corresponding color category.
type Theme struct {
	Name string
	// Primary highlights kernel names and headings.
	Primary string
	// Secondary is used for labels and secondary figures.
	Secondary string
	// Success marks consistent results and good speedups.
	Success string
	// Warning marks poor efficiency.
	Warning string
	// Error marks failures and mismatches.
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // Bright blue
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Info:      "\033[38;5;54m",  // Dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or -no-color is given.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name: "dark", "light" or "none".
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme initializes the theme based on the noColor flag and environment.
// It respects the NO_COLOR environment variable (https://no-color.org/).
// PARBENCH_THEME=light selects the light palette.
func InitTheme(noColor bool) {
	if noColor {
		SetTheme("none")
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		SetTheme("none")
		return
	}
	SetTheme(os.Getenv("PARBENCH_THEME"))
}

// ColorsEnabled reports whether the active theme emits escape codes.
func ColorsEnabled() bool {
	return GetCurrentTheme().Name != NoColorTheme.Name
}
