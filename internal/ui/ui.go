package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the full-screen program and blocks until the player quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if cerr := m.client.Close(); err == nil {
		err = cerr
	}
	return err
}
