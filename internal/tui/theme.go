package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

type palette struct {
	Text     lipgloss.Color
	Subtext  lipgloss.Color
	Overlay  lipgloss.Color
	Surface  lipgloss.Color
	Base     lipgloss.Color
	Accent   lipgloss.Color
	Focus    lipgloss.Color
	Error    lipgloss.Color
	Success  lipgloss.Color
	Operator lipgloss.Color
}

var mocha = palette{
	Text:     "#cdd6f4",
	Subtext:  "#a6adc8",
	Overlay:  "#6c7086",
	Surface:  "#313244",
	Base:     "#1e1e2e",
	Accent:   "#f5c2e7",
	Focus:    "#b4befe",
	Error:    "#f38ba8",
	Success:  "#a6e3a1",
	Operator: "#fab387",
}

var latte = palette{
	Text:     "#4c4f69",
	Subtext:  "#6c6f85",
	Overlay:  "#9ca0b0",
	Surface:  "#ccd0da",
	Base:     "#eff1f5",
	Accent:   "#ea76cb",
	Focus:    "#7287fd",
	Error:    "#d20f39",
	Success:  "#40a02b",
	Operator: "#fe640b",
}

// paletteFor falls back to mocha for unknown names.
func paletteFor(name string) palette {
	if name == "latte" {
		return latte
	}
	return mocha
}

func (p palette) colors() []lipgloss.Color {
	return []lipgloss.Color{
		p.Text, p.Subtext, p.Overlay, p.Surface, p.Base,
		p.Accent, p.Focus, p.Error, p.Success, p.Operator,
	}
}

type styles struct {
	panel   lipgloss.Style
	display lipgloss.Style
	result  lipgloss.Style
	errText lipgloss.Style
	pending lipgloss.Style
	title   lipgloss.Style
	status  lipgloss.Style
}

func newStyles(p palette, width int) styles {
	line := lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Focus).
			Padding(0, 1),
		display: line.Foreground(p.Text).Bold(true),
		result:  line.Foreground(p.Success).Bold(true),
		errText: line.Foreground(p.Error).Bold(true),
		pending: line.Foreground(p.Operator),
		title:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		status:  lipgloss.NewStyle().Foreground(p.Subtext).Italic(true),
	}
}
