package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/navtree/pkg/config"
	"github.com/vanderheijden86/navtree/pkg/navtree"
)

// ColorSelected highlights the status line.
var ColorSelected = lipgloss.AdaptiveColor{Dark: "#c3e88d", Light: "#587539"}

// Styles holds the styles of the host window.
type Styles struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Status lipgloss.Style
	Help   lipgloss.Style
	Tree   navtree.Theme
}

// Palette applies the color overrides of cfg on top of the defaults.
func Palette(cfg config.ThemeConfig) navtree.Palette {
	p := navtree.DefaultPalette()
	override(&p.Primary, cfg.Primary)
	override(&p.Muted, cfg.Muted)
	override(&p.Text, cfg.Label)
	return p
}

func override(c *lipgloss.AdaptiveColor, hex string) {
	if hex != "" {
		*c = lipgloss.AdaptiveColor{Dark: hex, Light: hex}
	}
}

// DefaultStyles returns the window styles without color overrides.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return NewStyles(r, config.ThemeConfig{})
}

// NewStyles builds the window styles for renderer r. A nil renderer uses
// the default one.
func NewStyles(r *lipgloss.Renderer, cfg config.ThemeConfig) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := Palette(cfg)
	selected := ColorSelected
	override(&selected, cfg.Selected)

	return Styles{
		Frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Muted).
			Padding(0, 1),
		Title:  r.NewStyle().Foreground(p.Primary).Bold(true),
		Status: r.NewStyle().Foreground(selected),
		Help:   r.NewStyle().Foreground(p.Muted),
		Tree:   navtree.NewTheme(r, p),
	}
}
