package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
// Each ANSI field contains an escape code for the corresponding color
// category; Accent, Good and Bad are the lipgloss colors used for styled
// blocks such as unit headers and the summary table.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for important elements.
	Primary string
	// Secondary is used for less prominent elements.
	Secondary string
	// Success indicates handled conditions and clean units.
	Success string
	// Warning is used for skipped units.
	Warning string
	// Error indicates unhandled failures.
	Error string
	// Bold is the escape code for bold text.
	Bold string
	// Reset clears all formatting.
	Reset string

	Accent lipgloss.TerminalColor
	Good   lipgloss.TerminalColor
	Bad    lipgloss.TerminalColor
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
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("39"),
		Good:      lipgloss.Color("82"),
		Bad:       lipgloss.Color("196"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // Dark blue
		Secondary: "\033[38;5;240m", // Dark grey
		Success:   "\033[38;5;28m",  // Dark green
		Warning:   "\033[38;5;130m", // Orange
		Error:     "\033[38;5;124m", // Dark red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("27"),
		Good:      lipgloss.Color("28"),
		Bad:       lipgloss.Color("124"),
	}

	// OrangeTheme is an orange-dominant dark theme.
	OrangeTheme = Theme{
		Name:      "orange",
		Primary:   "\033[38;5;208m", // Orange
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Bright green
		Warning:   "\033[38;5;214m", // Light orange
		Error:     "\033[38;5;196m", // Red
		Bold:      "\033[1m",
		Reset:     "\033[0m",
		Accent:    lipgloss.Color("#FF8C00"),
		Good:      lipgloss.Color("#9ece6a"),
		Bad:       lipgloss.Color("#FF4444"),
	}

	// NoColorTheme disables all color output.
	// Used when NO_COLOR is set or --no-color flag is provided.
	NoColorTheme = Theme{
		Name:   "none",
		Accent: lipgloss.NoColor{},
		Good:   lipgloss.NoColor{},
		Bad:    lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used for testing purposes to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name.
// Valid names are: "dark", "light", "orange", "none".
// Unknown names default to dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = themeByName(name)
}

func themeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "orange":
		return OrangeTheme
	case "none":
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme initializes the theme from the configured name, the noColor flag
// and the environment. It respects the NO_COLOR environment variable
// (https://no-color.org/): if noColor is true or NO_COLOR is set, colors are
// disabled whatever name says.
func InitTheme(name string, noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = themeByName(name)
}

// ColorPrimary returns the primary color of the active theme.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the secondary color of the active theme.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the success color of the active theme.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the warning color of the active theme.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the error color of the active theme.
func ColorError() string { return GetCurrentTheme().Error }

// ColorBold returns the bold escape code of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }
