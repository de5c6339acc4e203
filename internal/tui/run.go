package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/hiddenwords/internal/session"
)

// Run blocks until the player quits. It closes ctrl on return.
func Run(ctrl *session.Controller) error {
	m := New(ctrl)
	defer func() {
		m.Close()
		ctrl.Close()
	}()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
