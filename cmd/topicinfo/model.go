package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kodflow/topiccore/internal/bootstrap"
	"github.com/kodflow/topiccore/internal/domain/shared"
	"github.com/kodflow/topiccore/internal/domain/topic"
)

// model is the Bubble Tea model for the single-screen stats viewer.
type model struct {
	app      *bootstrap.App
	width    int
	quitting bool

	topics []string
	rows   []topic.StatsRow
}

func newModel(app *bootstrap.App) model {
	return model{app: app}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the refresh loop.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update handles key presses and refresh ticks.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		m.topics = m.app.Manager.TopicNames()
		m.rows = m.app.Manager.GetPubSubInfo()
		return m, tick()
	}
	return m, nil
}

// View renders the topic table.
func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(fmt.Sprintf("topicinfo — %d topics, %d connections", len(m.topics), len(m.rows))))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-30s %-10s %-6s %-10s %10s %10s", "TOPIC", "DIR", "LIVE", "TRANSPORT", "BYTES", "MSGS")))
	sb.WriteString("\n")

	if len(m.rows) == 0 {
		sb.WriteString(dimStyle.Render("  (no connections yet)"))
		sb.WriteString("\n")
	}

	for _, r := range m.rows {
		style := liveStyle
		status := "live"
		if !r.Live {
			style = deadStyle
			status = "dead"
		}
		line := fmt.Sprintf("%-30s %-10s %-6s %-10s %10s %10d", r.TopicName, r.Direction.String(), status, r.TransportType, shared.FormatSize(int64(r.StatBytes)), r.StatNumMsg)
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("[q] quit"))
	return sb.String()
}
