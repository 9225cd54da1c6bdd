package viewer

import (
	"context"
	"log/slog"
)

// Display is the platform's fullscreen facility. Fullscreen reports the actual
// state, which can change without the viewer asking (Escape, window manager).
type Display interface {
	RequestFullscreen(ctx context.Context) error
	ExitFullscreen(ctx context.Context) error
	Fullscreen() bool
}

// Bridge keeps the session's fullscreen flag equal to the display's state.
type Bridge struct {
	display  Display
	session  *Session
	onDenied func(error)
}

type BridgeOption func(*Bridge)

// WithOnDenied observes refused fullscreen requests. Toggle still returns nil.
func WithOnDenied(fn func(error)) BridgeOption {
	return func(b *Bridge) {
		b.onDenied = fn
	}
}

func NewBridge(display Display, session *Session, opts ...BridgeOption) *Bridge {
	b := &Bridge{display: display, session: session}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Toggle enters or leaves fullscreen depending on the display's current state.
// The session changes only after the display confirms. A refusal leaves
// everything as it was and is not returned.
func (b *Bridge) Toggle(ctx context.Context) error {
	if !b.display.Fullscreen() {
		if err := b.display.RequestFullscreen(ctx); err != nil {
			b.denied("enter", err)
			return nil
		}
		b.session.SetFullscreen(true)
		return nil
	}

	if err := b.display.ExitFullscreen(ctx); err != nil {
		b.denied("exit", err)
		return nil
	}
	b.session.SetFullscreen(false)
	return nil
}

// Sync is the display's change listener.
func (b *Bridge) Sync() {
	b.session.SetFullscreen(b.display.Fullscreen())
}

func (b *Bridge) denied(op string, err error) {
	slog.Debug("fullscreen request refused", "op", op, "error", err)
	if b.onDenied != nil {
		b.onDenied(err)
	}
}
