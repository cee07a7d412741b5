package tui

import (
	"fmt"
	"strings"
	"time"

	"foldertoai/pkg/ingest"
	"foldertoai/pkg/segment"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, status, progress, counter, box border and help lines
	chromeHeight = 9
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("right", "l", "n"),
		key.WithHelp("→/l", "next message"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "p"),
		key.WithHelp("←/h", "previous message"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type tickMsg time.Time

// BrowseModel is a Bubble Tea model that advances an ingestion run on every
// tick and, once it is ready, shows one message at a time.
type BrowseModel struct {
	ctrl     *ingest.Controller
	budget   time.Duration
	messages segment.MessageSet
	index    int
	loaded   bool

	viewport viewport.Model
	progress progress.Model
	width    int
	height   int
	quitting bool
}

// NewBrowseModel creates a model for ctrl. Each tick spends at most budget
// advancing the run.
func NewBrowseModel(ctrl *ingest.Controller, budget time.Duration) BrowseModel {
	if budget <= 0 {
		budget = ingest.DefaultBudget
	}
	m := BrowseModel{
		ctrl:     ctrl,
		budget:   budget,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth-4)),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.viewport = viewport.New(defaultWidth-4, defaultHeight-chromeHeight)
	return m
}

func (m BrowseModel) tick() tea.Cmd {
	return tea.Tick(m.budget, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 1)
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.progress.Width = max(msg.Width-4, 1)
		return m, nil

	case tickMsg:
		if m.ctrl.State().Terminal() {
			return m, nil
		}
		switch ingest.Drive(m.ctrl, m.budget) {
		case ingest.Ready:
			m.messages, _ = m.ctrl.Messages()
			m.loaded = true
			m.show(0)
			return m, nil
		case ingest.Failed:
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if m.loaded && m.index+1 < m.messages.Len() {
				m.show(m.index + 1)
			}
			return m, nil
		case key.Matches(msg, keys.Prev):
			if m.loaded && m.index > 0 {
				m.show(m.index - 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *BrowseModel) show(i int) {
	m.index = i
	m.viewport.SetContent(m.messages.At(i))
	m.viewport.GotoTop()
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("FolderToAI") + " " + PathStyle.Render(m.ctrl.Root()))
	b.WriteString("\n\n")

	state := m.ctrl.State()
	status := ingest.StatusLine(state, m.ctrl.Progress())
	if state == ingest.Failed {
		b.WriteString(ErrorStyle.Render(status))
		if err := m.ctrl.Err(); err != nil {
			b.WriteString("\n" + ErrorStyle.Render(err.Error()))
		}
	} else {
		b.WriteString(StatusStyle.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.ctrl.Progress().Fraction()))
	b.WriteString("\n")

	if m.loaded {
		b.WriteString(CounterStyle.Render(fmt.Sprintf("Message %d/%d", m.index+1, m.messages.Len())))
		b.WriteString("\n")
		b.WriteString(BoxStyle.Render(m.viewport.View()))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("←/h previous • →/l next • ↑/↓ scroll • q quit"))
	} else {
		b.WriteString(HelpStyle.Render("q quit"))
	}
	return b.String()
}

// RunBrowse runs the browse TUI until the user quits.
func RunBrowse(ctrl *ingest.Controller, budget time.Duration) error {
	p := tea.NewProgram(NewBrowseModel(ctrl, budget), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
