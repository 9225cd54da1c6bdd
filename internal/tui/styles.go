package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	fg      lipgloss.Color
	bg      lipgloss.Color
	muted   lipgloss.Color
	accent  lipgloss.Color
	danger  lipgloss.Color
	surface lipgloss.Color
}

var (
	lightPalette = palette{
		fg:      lipgloss.Color("235"),
		bg:      lipgloss.Color("255"),
		muted:   lipgloss.Color("245"),
		accent:  lipgloss.Color("27"),
		danger:  lipgloss.Color("160"),
		surface: lipgloss.Color("252"),
	}
	darkPalette = palette{
		fg:      lipgloss.Color("252"),
		bg:      lipgloss.Color("234"),
		muted:   lipgloss.Color("242"),
		accent:  lipgloss.Color("39"),
		danger:  lipgloss.Color("9"),
		surface: lipgloss.Color("237"),
	}
)

type styles struct {
	toolbar  lipgloss.Style
	title    lipgloss.Style
	control  lipgloss.Style
	disabled lipgloss.Style
	page     lipgloss.Style
	frame    lipgloss.Style
	info     lipgloss.Style
	err      lipgloss.Style
	notice   lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}

	return styles{
		toolbar:  lipgloss.NewStyle().Foreground(p.fg).Background(p.surface).Padding(0, 1),
		title:    lipgloss.NewStyle().Foreground(p.fg).Background(p.surface).Bold(true),
		control:  lipgloss.NewStyle().Foreground(p.accent).Background(p.surface),
		disabled: lipgloss.NewStyle().Foreground(p.muted).Background(p.surface),
		page: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Align(lipgloss.Center, lipgloss.Center),
		frame:  lipgloss.NewStyle().Padding(1, 2),
		info:   lipgloss.NewStyle().Foreground(p.muted),
		err:    lipgloss.NewStyle().Foreground(p.danger).Bold(true),
		notice: lipgloss.NewStyle().Foreground(p.accent).Italic(true),
	}
}
