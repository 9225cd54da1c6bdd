// Package tui is the terminal document viewer.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/openmined/pdfdesk/internal/render"
	"github.com/openmined/pdfdesk/internal/viewer"
)

const (
	txtLoading               = "Loading PDF..."
	txtFullscreenUnavailable = "Fullscreen is not available in this terminal"

	noticeTimeout = 3 * time.Second
)

// Loader is the rendering engine as seen by the viewer.
type Loader interface {
	Load(ctx context.Context, url string) (*render.Document, error)
}

type Options struct {
	DocumentID  int64
	Filename    string
	URL         string
	InitialPage int
	Loader      Loader
	Theme       viewer.ThemeStore
	// Interactive is false when stdout is not a terminal; fullscreen is refused then.
	Interactive bool
}

type loadedMsg struct {
	doc *render.Document
	err error
}

type clearNoticeMsg struct{ seq int }

type Model struct {
	ctx  context.Context
	opts Options

	viewer  *viewer.Viewer
	bus     *viewer.KeyBus
	unmount func()
	display *altScreen
	doc     *render.Document

	keys      KeyMap
	help      help.Model
	pageInput textinput.Model
	progress  progress.Model

	notice    string
	noticeSeq int
	cmds      []tea.Cmd

	width  int
	height int
}

func New(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctx:  ctx,
		opts: opts,
		bus:  viewer.NewKeyBus(),
		keys: DefaultKeyMap(),
		help: help.New(),
	}

	m.display = &altScreen{interactive: opts.Interactive, enqueue: m.enqueue}
	m.viewer = viewer.New(viewer.Options{
		DocumentID:  opts.DocumentID,
		Filename:    opts.Filename,
		InitialPage: opts.InitialPage,
		Display:     m.display,
		Theme:       opts.Theme,
		OnDenied:    m.fullscreenDenied,
	})
	m.unmount = m.viewer.Mount(m.bus)

	m.pageInput = textinput.New()
	m.pageInput.Prompt = ""
	m.pageInput.CharLimit = 6
	m.pageInput.Width = 6

	m.progress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	return m
}

func (m *Model) Viewer() *viewer.Viewer {
	return m.viewer
}

func (m *Model) Init() tea.Cmd {
	return m.load
}

func (m *Model) load() tea.Msg {
	doc, err := m.opts.Loader.Load(m.ctx, m.opts.URL)
	return loadedMsg{doc: doc, err: err}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		// the engine's signals are applied here so the session is only touched by the ui loop
		if msg.err != nil {
			slog.Warn("load document", "id", m.opts.DocumentID, "error", msg.err)
			m.viewer.SetLoadError(render.MsgLoadFailed)
			return m, nil
		}
		m.doc = msg.doc
		m.viewer.SetTotalPages(msg.doc.PageCount())
		return m, nil

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.pageInput.Focused() {
		return m.handlePageInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.GoTo):
		if m.viewer.State().TotalPages == 0 {
			return m, nil
		}
		m.pageInput.SetValue(strconv.Itoa(m.viewer.State().Page))
		m.pageInput.CursorEnd()
		return m, m.pageInput.Focus()

	case key.Matches(msg, m.keys.Theme):
		if err := m.viewer.ToggleTheme(); err != nil {
			m.setNotice("Could not save theme preference")
		}
		return m, m.flush()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case msg.Type == tea.KeyEsc && m.display.Fullscreen():
		m.display.platformExit()
		m.viewer.Bridge().Sync()
		return m, m.flush()
	}

	m.bus.Emit(m.ctx, keyEvent(msg, viewer.TargetDocument))
	return m, m.flush()
}

// handlePageInput feeds the focused page field. Enter and Escape both leave the
// field and submit it, like a blur.
func (m *Model) handlePageInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.submitPage()
		return m, nil
	}

	// the global listener still sees the key, and must leave it alone
	m.bus.Emit(m.ctx, keyEvent(msg, viewer.TargetTextInput))

	var cmd tea.Cmd
	m.pageInput, cmd = m.pageInput.Update(msg)
	return m, tea.Batch(cmd, m.flush())
}

func (m *Model) submitPage() {
	m.pageInput.Blur()

	n, err := strconv.Atoi(strings.TrimSpace(m.pageInput.Value()))
	if err != nil || !m.viewer.GoToPage(n) {
		slog.Debug("page input rejected", "value", m.pageInput.Value())
	}
	m.pageInput.SetValue(strconv.Itoa(m.viewer.State().Page))
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.unmount()
	return m, tea.Quit
}

func (m *Model) fullscreenDenied(err error) {
	slog.Debug("fullscreen denied", "error", err)
	m.setNotice(txtFullscreenUnavailable)
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	m.enqueue(tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	}))
}

func (m *Model) enqueue(cmd tea.Cmd) {
	m.cmds = append(m.cmds, cmd)
}

func (m *Model) flush() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	return tea.Batch(cmds...)
}

func (m *Model) View() string {
	st := m.viewer.State()
	s := newStyles(m.viewer.DarkMode())

	var b strings.Builder
	b.WriteString(m.renderToolbar(s, st))
	b.WriteString("\n")

	switch {
	case st.Loading:
		b.WriteString(s.frame.Render(s.info.Render(txtLoading)))
	case st.Err != "":
		b.WriteString(s.frame.Render(s.err.Render(st.Err)))
	default:
		b.WriteString(m.renderPage(s, st))
		b.WriteString("\n")
		b.WriteString(m.renderNavigator(s, st))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(s.notice.Render(m.notice))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderToolbar(s styles, st viewer.State) string {
	control := func(label string, enabled bool) string {
		if enabled {
			return s.control.Render(label)
		}
		return s.disabled.Render(label)
	}

	page := strconv.Itoa(st.Page)
	if m.pageInput.Focused() {
		page = m.pageInput.View()
	}

	theme := "light"
	if m.viewer.DarkMode() {
		theme = "dark"
	}
	screen := "window"
	if st.Fullscreen {
		screen = "fullscreen"
	}

	parts := []string{
		s.title.Render(m.opts.Filename),
		control("◀", st.CanPrev()),
		s.toolbar.Render(fmt.Sprintf("%s / %d", page, st.TotalPages)),
		control("▶", st.CanNext()),
		control("-", st.Scale > viewer.MinScale),
		s.toolbar.Render(fmt.Sprintf("%d%%", st.ZoomPercent())),
		control("+", st.Scale < viewer.MaxScale),
		s.disabled.Render(theme),
		s.disabled.Render(screen),
	}

	return s.toolbar.Render(strings.Join(parts, s.toolbar.Render("  ")))
}

func (m *Model) renderPage(s styles, st viewer.State) string {
	if m.doc == nil {
		return ""
	}

	frame := m.doc.Describe(st.Page, st.Scale)
	maxCols, maxRows := m.width-6, m.height-8
	if m.width == 0 {
		maxCols, maxRows = 80, 24
	}

	cols, rows := frame.Cells(maxCols, maxRows)
	if cols == 0 {
		return s.frame.Render(frame.String())
	}

	page := s.page.Width(cols).Height(rows).Render(frame.String())
	return s.frame.Render(lipgloss.PlaceHorizontal(max(m.width-4, cols+2), lipgloss.Center, page))
}

func (m *Model) renderNavigator(s styles, st viewer.State) string {
	return s.frame.Render(m.progress.ViewAs(st.Progress() / 100))
}

// Run shows the viewer until the user quits or ctx ends.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	m := New(ctx, opts)
	defer m.unmount()

	programOpts = append([]tea.ProgramOption{tea.WithContext(ctx)}, programOpts...)
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}
