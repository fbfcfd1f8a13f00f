package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chatdock/internal/chatlog"
)

// Theme defines colors for the panel.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and bars
	FocusBg    string // Input rows while focused

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string

	// Chat highlight colors
	Tag  string
	User string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Header     lipgloss.Style
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	KeyText    lipgloss.Style
	DangerText lipgloss.Style
	Tag        lipgloss.Style
	User       lipgloss.Style
	Box        lipgloss.Style
	BoxFocus   lipgloss.Style
	InputFocus lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		KeyText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Tag:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Tag)),
		User: lipgloss.NewStyle().Foreground(lipgloss.Color(t.User)),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
		BoxFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)),
		InputFocus: lipgloss.NewStyle().
			Background(lipgloss.Color(t.FocusBg)).
			Foreground(lipgloss.Color(t.Text)),
	}
}

// ClassStyle returns the style for a highlight class.
func (s Styles) ClassStyle(c chatlog.Class) lipgloss.Style {
	switch c {
	case chatlog.ClassTag:
		return s.Tag
	case chatlog.ClassUser:
		return s.User
	default:
		return s.Text
	}
}

// Theme definitions

const defaultThemeName = "Krita"

var themes = map[string]Theme{
	"Krita":    kritaTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Krita", "Nightfox", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return kritaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func kritaTheme() Theme {
	// Neutral grays close to Krita's default dark scheme
	return Theme{
		Name: "Krita",

		Background: "#262626",
		Surface:    "#313131",
		FocusBg:    "#3b3b3b",

		Border:      "#4a4a4a",
		BorderFocus: "#3daee9",

		Text:    "#eff0f1",
		Muted:   "#a0a0a0",
		Faint:   "#7a7a7a",
		Accent:  "#3daee9",
		Warning: "#f67400",
		Danger:  "#da4453",

		Tag:  "#16a34a",
		User: "#00c2d1",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		FocusBg:    "#29394f", // bg3

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red

		Tag:  "#81b29a", // green
		User: "#63cdcf", // cyan
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		FocusBg:    "#283548",

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500

		Tag:  "#22c55e", // green-500
		User: "#06b6d4", // cyan-500
	}
}
