package tui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/restdeck/internal/config"
)

// Run starts the TUI and blocks until the user quits. Log output goes to
// the configured log file while the TUI owns the terminal.
func Run(deps Deps) error {
	if config.LogFile != "" {
		f, err := tea.LogToFile(config.LogFile, "restdeck")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	}

	m := New(deps)

	// Pointer model: Update uses pointer receivers
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	log.Printf("restdeck %s exited", deps.Version)
	return nil
}
