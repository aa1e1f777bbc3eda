package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mcmap/internal/manifest"
)

// Theme defines colors used for terminal output.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
	Border  string

	// PinColors maps palette colours to terminal colours.
	PinColors map[manifest.PinColor]string
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Width(labelWidth),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Bold(true).
			Padding(0, 1),

		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Border)),

		pinColors: t.PinColors,
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Text        lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Tables
	Header lipgloss.Style
	Cell   lipgloss.Style
	Border lipgloss.Style

	pinColors map[manifest.PinColor]string
}

// PinStyle returns a cell style tinted with the pin's palette colour.
func (s Styles) PinStyle(c manifest.PinColor) lipgloss.Style {
	color := s.pinColors[c]
	if color == "" {
		return s.Cell
	}
	return s.Cell.Foreground(lipgloss.Color(color))
}

const labelWidth = 18

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

// GetTheme returns a theme by name, defaulting to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

func draculaTheme() Theme {
	return Theme{
		Name: "Dracula",

		Text:    "#F8F8F2", // Foreground
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A", // Selection
		Accent:  "#BD93F9", // Purple
		Success: "#50FA7B", // Green
		Warning: "#FFB86C", // Orange
		Danger:  "#FF5555", // Red
		Info:    "#8BE9FD", // Cyan
		Border:  "#44475A",

		PinColors: map[manifest.PinColor]string{
			manifest.PinColorRed:    "#FF5555",
			manifest.PinColorOrange: "#FFB86C",
			manifest.PinColorYellow: "#F1FA8C",
			manifest.PinColorGreen:  "#50FA7B",
			manifest.PinColorBlue:   "#6272F4",
			manifest.PinColorIndigo: "#BD93F9",
			manifest.PinColorBrown:  "#A07050",
			manifest.PinColorGray:   "#6272A4",
			manifest.PinColorPink:   "#FF79C6",
		},
	}
}

func slateTheme() Theme {
	return Theme{
		Name: "Slate",

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
		Border:  "#334155", // slate-700

		PinColors: map[manifest.PinColor]string{
			manifest.PinColorRed:    "#ef4444",
			manifest.PinColorOrange: "#f97316",
			manifest.PinColorYellow: "#eab308",
			manifest.PinColorGreen:  "#22c55e",
			manifest.PinColorBlue:   "#3b82f6",
			manifest.PinColorIndigo: "#6366f1",
			manifest.PinColorBrown:  "#a16207",
			manifest.PinColorGray:   "#64748b",
			manifest.PinColorPink:   "#ec4899",
		},
	}
}
