package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/openmined/pdfdesk/internal/viewer"
)

// KeyMap lists the bindings shown in the help bar. Navigation, zoom and fullscreen
// are routed through the viewer's KeyBus; the rest are toolbar controls.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ResetZoom  key.Binding
	Fullscreen key.Binding
	GoTo       key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "pgdown"),
			key.WithHelp("→/pgdn", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "pgup"),
			key.WithHelp("←/pgup", "previous page"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("alt+=", "alt++"),
			key.WithHelp("alt+=", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("alt+-"),
			key.WithHelp("alt+-", "zoom out"),
		),
		ResetZoom: key.NewBinding(
			key.WithKeys("alt+0"),
			key.WithHelp("alt+0", "reset zoom"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("ctrl+f", "alt+f"),
			key.WithHelp("ctrl+f", "fullscreen"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.GoTo, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.GoTo},
		{k.ZoomIn, k.ZoomOut, k.ResetZoom},
		{k.Fullscreen, k.Theme},
		{k.Help, k.Quit},
	}
}

// keyEvent converts a terminal key press into the viewer's key model.
// Terminals cannot report ctrl with punctuation, so alt stands in for meta.
func keyEvent(msg tea.KeyMsg, target viewer.Target) viewer.KeyEvent {
	ev := viewer.KeyEvent{Meta: msg.Alt, Target: target}

	switch msg.Type {
	case tea.KeyRight:
		ev.Key = viewer.KeyArrowRight
	case tea.KeyLeft:
		ev.Key = viewer.KeyArrowLeft
	case tea.KeyPgDown:
		ev.Key = viewer.KeyPageDown
	case tea.KeyPgUp:
		ev.Key = viewer.KeyPageUp
	case tea.KeyEsc:
		ev.Key = viewer.KeyEscape
	case tea.KeyCtrlF:
		ev.Key = "f"
		ev.Ctrl = true
	case tea.KeyRunes:
		ev.Key = string(msg.Runes)
	default:
		ev.Key = msg.String()
	}

	return ev
}
