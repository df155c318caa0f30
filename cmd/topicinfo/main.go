// Package main provides topicinfo, a read-only terminal viewer over a
// topic-core node's publisher/subscriber registry and per-connection
// stats. It wires its own demo node (same as topicd) so it always has
// something to show.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kodflow/topiccore/internal/bootstrap"
)

func main() {
	configPath := flag.String("config", "", "path to node YAML config file")
	flag.Parse()

	app, err := bootstrap.InitializeTUIApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer app.Cleanup()
	app.WireDemoTopic()

	p := tea.NewProgram(newModel(app), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// refreshInterval is how often the viewer re-polls the manager.
const refreshInterval = 500 * time.Millisecond

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	liveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
