// Package preview renders the live status line in a terminal.
package preview

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/xstatus/internal/daemon/statusline"
	"github.com/grovetools/xstatus/tui/theme"
)

// Source produces status lines.
type Source interface {
	Collect(ctx context.Context) (statusline.Line, error)
}

// KeyMap holds the preview key bindings.
type KeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

type tickMsg time.Time

type lineMsg struct {
	line   statusline.Line
	err    error
	at     time.Time
	manual bool
}

// Model is the bubbletea model of the preview.
type Model struct {
	ctx      context.Context
	source   Source
	interval time.Duration
	keys     KeyMap
	theme    *theme.Theme
	now      func() time.Time

	line     statusline.Line
	updated  time.Time
	cycles   int
	fetching bool
	err      error
	width    int
}

// New creates a preview that refreshes from source every interval.
func New(ctx context.Context, source Source, interval time.Duration) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:      ctx,
		source:   source,
		interval: interval,
		keys:     DefaultKeyMap(),
		theme:    theme.DefaultTheme,
		now:      time.Now,
	}
}

// Err returns the collector error that ended the preview, if any.
func (m Model) Err() error {
	return m.err
}

// Line returns the most recent status line.
func (m Model) Line() statusline.Line {
	return m.line
}

// Init starts the first collection.
func (m Model) Init() tea.Cmd {
	return m.fetch(false)
}

// fetch collects in the background. Only non-manual results schedule the next tick.
func (m Model) fetch(manual bool) tea.Cmd {
	source, ctx, now := m.source, m.ctx, m.now
	return func() tea.Msg {
		line, err := source.Collect(ctx)
		return lineMsg{line: line, err: err, at: now(), manual: manual}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles key presses, ticks and collected lines.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.fetching {
				return m, nil
			}
			m.fetching = true
			return m, m.fetch(true)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if m.fetching {
			return m, m.tick()
		}
		m.fetching = true
		return m, m.fetch(false)

	case lineMsg:
		m.fetching = false
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.line = msg.line
		m.updated = msg.at
		m.cycles++
		if msg.manual {
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

// View renders the status line.
func (m Model) View() string {
	t := m.theme
	if m.err != nil {
		return t.Error.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	body := t.Muted.Render("collecting...")
	if m.cycles > 0 {
		body = m.line.String()
	}

	style := t.Box
	if m.width > 4 {
		style = style.MaxWidth(m.width)
	}

	footer := fmt.Sprintf("every %s", m.interval)
	if !m.updated.IsZero() {
		footer += fmt.Sprintf(" • updated %s", m.updated.Format("15:04:05"))
	}
	footer += fmt.Sprintf(" • %s %s • %s %s",
		m.keys.Refresh.Help().Key, m.keys.Refresh.Help().Desc,
		m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)

	return t.Title.Render("xstatus preview") + "\n" +
		style.Render(body) + "\n" +
		t.Muted.Render(footer) + "\n"
}
