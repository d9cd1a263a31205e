package navtree

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by Model.View.
type Theme struct {
	Renderer *lipgloss.Renderer

	Connector lipgloss.Style // ancestry prefix
	Label     lipgloss.Style // opened nodes and leaves
	Collapsed lipgloss.Style // closed nodes that hide children
}

// Palette is the set of colors a Theme is derived from.
type Palette struct {
	Primary lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Primary: lipgloss.AdaptiveColor{Dark: "#82aaff", Light: "#2e7de9"},
		Muted:   lipgloss.AdaptiveColor{Dark: "#697098", Light: "#8990a3"},
		Text:    lipgloss.AdaptiveColor{Dark: "#bfc7d5", Light: "#4c505e"},
	}
}

// DefaultTheme returns the standard theme for renderer r.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return NewTheme(r, DefaultPalette())
}

// NewTheme builds a theme from a palette.
func NewTheme(r *lipgloss.Renderer, p Palette) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Theme{
		Renderer:  r,
		Connector: r.NewStyle().Foreground(p.Muted),
		Label:     r.NewStyle().Foreground(p.Text),
		Collapsed: r.NewStyle().Foreground(p.Primary).Bold(true),
	}
}
