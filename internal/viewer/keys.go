package viewer

import (
	"context"
	"sync"
)

// Target is the kind of element that had focus when a key was pressed.
type Target int

const (
	TargetDocument Target = iota
	TargetTextInput
)

const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyPageDown   = "PageDown"
	KeyPageUp     = "PageUp"
	KeyEscape     = "Escape"
)

type KeyEvent struct {
	Key    string
	Ctrl   bool
	Meta   bool
	Target Target
}

func (e KeyEvent) modified() bool {
	return e.Ctrl || e.Meta
}

// Actions are the commands a key can trigger.
type Actions interface {
	NextPage()
	PrevPage()
	ZoomIn()
	ZoomOut()
	ResetZoom()
	ToggleFullscreen(ctx context.Context)
}

// Listener returns true when it consumed the event.
type Listener func(ctx context.Context, ev KeyEvent) bool

// KeyBus is the process-wide key listener list. Events are delivered to every
// listener in subscription order.
type KeyBus struct {
	mu        sync.Mutex
	next      int
	order     []int
	listeners map[int]Listener
}

func NewKeyBus() *KeyBus {
	return &KeyBus{listeners: make(map[int]Listener)}
}

func (b *KeyBus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.listeners[id] = l
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Emit delivers ev and reports whether any listener consumed it.
func (b *KeyBus) Emit(ctx context.Context, ev KeyEvent) bool {
	b.mu.Lock()
	ls := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		ls = append(ls, b.listeners[id])
	}
	b.mu.Unlock()

	handled := false
	for _, l := range ls {
		if l(ctx, ev) {
			handled = true
		}
	}
	return handled
}

func (b *KeyBus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Router maps key events onto viewer actions.
type Router struct {
	actions Actions

	mu       sync.Mutex
	detached bool
}

func NewRouter(actions Actions) *Router {
	return &Router{actions: actions}
}

// Dispatch runs the action bound to ev. The result means "suppress the default
// behaviour of this key". Keys typed into a text field are never handled.
func (r *Router) Dispatch(ctx context.Context, ev KeyEvent) bool {
	r.mu.Lock()
	detached := r.detached
	r.mu.Unlock()
	if detached || ev.Target == TargetTextInput {
		return false
	}

	switch ev.Key {
	case KeyArrowRight, KeyPageDown:
		r.actions.NextPage()
		return true
	case KeyArrowLeft, KeyPageUp:
		r.actions.PrevPage()
		return true
	}

	if !ev.modified() {
		return false
	}

	switch ev.Key {
	case "+", "=":
		r.actions.ZoomIn()
	case "-":
		r.actions.ZoomOut()
	case "0":
		r.actions.ResetZoom()
	case "f", "F":
		r.actions.ToggleFullscreen(ctx)
	default:
		return false
	}
	return true
}

// Mount installs the router on bus. After unmount the router never acts again.
func (r *Router) Mount(bus *KeyBus) (unmount func()) {
	unsubscribe := bus.Subscribe(r.Dispatch)
	return func() {
		r.mu.Lock()
		r.detached = true
		r.mu.Unlock()
		unsubscribe()
	}
}
