package main

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette, see https://github.com/muesli/termenv/blob/master/ansicolors.go
var (
	red       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	green     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	yellow    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cyan      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	gray      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	lightGray = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))

	// table headers and form titles
	heading = cyan.Bold(true)
	// padded table cell
	cell = lipgloss.NewStyle().Padding(0, 1)
)
