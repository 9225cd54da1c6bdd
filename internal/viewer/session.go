package viewer

import "math"

const (
	MinScale     = 0.5
	MaxScale     = 3.0
	ZoomStep     = 0.25
	DefaultScale = 1.0

	MsgLoadFailed = "Failed to load PDF. Please try again."
)

// State is an immutable copy of a Session for rendering.
type State struct {
	Page       int
	TotalPages int
	Scale      float64
	Fullscreen bool
	Loading    bool
	Err        string
}

func (s State) CanPrev() bool {
	return s.Page > 1
}

func (s State) CanNext() bool {
	return s.Page < s.TotalPages
}

// ZoomPercent is the scale as a rounded percentage, 1.25 -> 125.
func (s State) ZoomPercent() int {
	return int(math.Round(s.Scale * 100))
}

// Progress is the reading position in [0, 100]. Zero until pages are known.
func (s State) Progress() float64 {
	if s.TotalPages <= 0 {
		return 0
	}
	return float64(s.Page) / float64(s.TotalPages) * 100
}

// Session is the state of one open document. It is not safe for concurrent use;
// all mutation happens on the UI loop.
//
// Invariants: 1 <= page <= max(total, 1) and MinScale <= scale <= MaxScale.
type Session struct {
	page       int
	total      int
	scale      float64
	fullscreen bool
	loading    bool
	err        string

	// requested start page, applied once the page count is known
	pending int
}

// NewSession starts loading. initialPage is honoured after the load succeeds,
// clamped to the document's page count.
func NewSession(initialPage int) *Session {
	return &Session{
		page:    1,
		pending: max(initialPage, 0),
		scale:   DefaultScale,
		loading: true,
	}
}

func (s *Session) Snapshot() State {
	return State{
		Page:       s.page,
		TotalPages: s.total,
		Scale:      s.scale,
		Fullscreen: s.fullscreen,
		Loading:    s.loading,
		Err:        s.err,
	}
}

// SetTotalPages is the engine's load-success signal.
func (s *Session) SetTotalPages(n int) {
	s.total = max(n, 0)
	s.loading = false
	s.err = ""
	if s.pending > 0 {
		s.page = s.pending
		s.pending = 0
	}
	s.page = min(s.page, max(s.total, 1))
}

// SetLoadError is the engine's load-failure signal.
func (s *Session) SetLoadError(msg string) {
	if msg == "" {
		msg = MsgLoadFailed
	}
	s.err = msg
	s.total = 0
	s.page = 1
	s.pending = 0
	s.loading = false
}

func (s *Session) ZoomIn() {
	s.scale = clampScale(s.scale + ZoomStep)
}

func (s *Session) ZoomOut() {
	s.scale = clampScale(s.scale - ZoomStep)
}

func (s *Session) ResetZoom() {
	s.scale = DefaultScale
}

// GoToPage moves to n when 1 <= n <= total and reports whether it did.
func (s *Session) GoToPage(n int) bool {
	if n < 1 || n > s.total {
		return false
	}
	s.page = n
	return true
}

func (s *Session) NextPage() {
	if s.page < s.total {
		s.page++
	}
}

func (s *Session) PrevPage() {
	if s.page > 1 {
		s.page--
	}
}

// SetFullscreen is reserved for the Bridge, which mirrors the display's real state.
func (s *Session) SetFullscreen(on bool) {
	s.fullscreen = on
}

func clampScale(v float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, v))
}
