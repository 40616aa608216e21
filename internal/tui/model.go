// Package tui is the terminal countdown client.
package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nightfall/internal/countdown"
	"nightfall/internal/model"
)

const tickInterval = time.Second

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B91C1C"))
	countdownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	bodyStyle      = lipgloss.NewStyle().PaddingLeft(2)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type tickMsg time.Time

type fetchedMsg countdown.Result

type fetchSkippedMsg struct{}

// Model shows the current story and the time left until the next one.
type Model struct {
	ctx context.Context
	cd  *countdown.Countdown

	story    *model.Story
	err      error
	fetching bool
	width    int
}

// New creates the model. A fetch is scheduled immediately when the
// countdown is already due.
func New(ctx context.Context, cd *countdown.Countdown) Model {
	return Model{ctx: ctx, cd: cd, fetching: cd.Due()}
}

func (m Model) Init() tea.Cmd {
	if m.fetching {
		return tea.Batch(tick(), m.fetchCmd())
	}
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.fetching {
				return m, nil
			}
			m.fetching = true
			return m, m.fetchCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		if !m.fetching && m.cd.Due() {
			m.fetching = true
			return m, tea.Batch(tick(), m.fetchCmd())
		}
		return m, tick()

	case fetchedMsg:
		m.fetching = false
		if msg.Err != nil {
			m.err = msg.Err
			m.story = nil
		} else {
			story := msg.Story
			m.story = &story
			m.err = nil
		}

	case fetchSkippedMsg:
		m.fetching = false
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Nightfall"))
	b.WriteString("\n")
	b.WriteString("Next story in " + countdownStyle.Render(countdown.FormatTime(m.cd.Remaining().Milliseconds())))
	b.WriteString("\n\n")

	switch {
	case m.fetching:
		b.WriteString(mutedStyle.Render("Fetching a new scary story..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.story != nil:
		b.WriteString(titleStyle.Render(m.story.Title))
		b.WriteString("\n\n")
		body := bodyStyle
		if m.width > 4 {
			body = body.Width(m.width - 2)
		}
		b.WriteString(body.Render(m.story.Body))
		for _, img := range m.story.Images {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("image: " + img))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("r refresh • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		res, ok := m.cd.Fetch(m.ctx)
		if !ok {
			return fetchSkippedMsg{}
		}
		return fetchedMsg(res)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
