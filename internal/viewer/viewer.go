// Package viewer holds the state machine of an open document: pagination, zoom,
// fullscreen and theme, plus the keyboard routing that drives it.
package viewer

import (
	"context"
	"log/slog"
)

// ThemeStore persists the dark mode preference.
type ThemeStore interface {
	DarkMode() bool
	SetDarkMode(dark bool) error
}

// Viewer is one open document. Its lifetime is one view; the theme is read from
// the store each time a viewer is created.
type Viewer struct {
	DocumentID int64
	Filename   string

	session *Session
	bridge  *Bridge
	router  *Router
	theme   ThemeStore
	dark    bool
}

type Options struct {
	DocumentID  int64
	Filename    string
	InitialPage int
	Display     Display
	Theme       ThemeStore
	OnDenied    func(error)
}

func New(opts Options) *Viewer {
	session := NewSession(opts.InitialPage)

	v := &Viewer{
		DocumentID: opts.DocumentID,
		Filename:   opts.Filename,
		session:    session,
		bridge:     NewBridge(opts.Display, session, WithOnDenied(opts.OnDenied)),
		theme:      opts.Theme,
		dark:       opts.Theme.DarkMode(),
	}
	v.router = NewRouter(v)
	return v
}

func (v *Viewer) State() State {
	return v.session.Snapshot()
}

func (v *Viewer) Session() *Session {
	return v.session
}

func (v *Viewer) Bridge() *Bridge {
	return v.bridge
}

func (v *Viewer) Router() *Router {
	return v.router
}

// Mount attaches the viewer's key router to bus for the lifetime of the view.
func (v *Viewer) Mount(bus *KeyBus) (unmount func()) {
	return v.router.Mount(bus)
}

func (v *Viewer) SetTotalPages(n int)     { v.session.SetTotalPages(n) }
func (v *Viewer) SetLoadError(msg string) { v.session.SetLoadError(msg) }

func (v *Viewer) NextPage()           { v.session.NextPage() }
func (v *Viewer) PrevPage()           { v.session.PrevPage() }
func (v *Viewer) ZoomIn()             { v.session.ZoomIn() }
func (v *Viewer) ZoomOut()            { v.session.ZoomOut() }
func (v *Viewer) ResetZoom()          { v.session.ResetZoom() }
func (v *Viewer) GoToPage(n int) bool { return v.session.GoToPage(n) }

func (v *Viewer) ToggleFullscreen(ctx context.Context) {
	_ = v.bridge.Toggle(ctx)
}

func (v *Viewer) DarkMode() bool {
	return v.dark
}

// ToggleTheme flips dark mode and persists it. The in-view value flips even
// when persisting fails.
func (v *Viewer) ToggleTheme() error {
	v.dark = !v.dark
	if err := v.theme.SetDarkMode(v.dark); err != nil {
		slog.Warn("persist theme", "error", err)
		return err
	}
	return nil
}
