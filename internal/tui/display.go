package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrNoTerminal = errors.New("fullscreen needs an interactive terminal")

// altScreen is the terminal's fullscreen: the alternate screen buffer.
// Requests are answered synchronously; the matching tea command is queued
// and sent by the model once the current update returns.
type altScreen struct {
	interactive bool
	on          bool
	enqueue     func(tea.Cmd)
}

func (a *altScreen) RequestFullscreen(context.Context) error {
	if !a.interactive {
		return ErrNoTerminal
	}
	a.on = true
	a.enqueue(tea.EnterAltScreen)
	return nil
}

func (a *altScreen) ExitFullscreen(context.Context) error {
	a.on = false
	a.enqueue(tea.ExitAltScreen)
	return nil
}

func (a *altScreen) Fullscreen() bool {
	return a.on
}

// platformExit is Escape while fullscreen: the terminal leaves on its own and
// the viewer learns about it afterwards.
func (a *altScreen) platformExit() {
	if !a.on {
		return
	}
	a.on = false
	a.enqueue(tea.ExitAltScreen)
}
