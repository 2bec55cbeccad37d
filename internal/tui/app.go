// Package tui implements the Bubble Tea program for threads.
package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/threads/internal/tui/views/thread"
)

// Options configures the threads TUI.
type Options struct {
	Thread thread.Options
}

// Model is the top-level model: a single full-screen thread view.
type Model struct {
	view     thread.View
	quitting bool
}

// New creates the top-level model.
func New(opts Options) Model {
	return Model{view: thread.New(opts.Thread)}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.view.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		m.quitting = true
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.view.View())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// Thread returns the thread view, mainly for tests.
func (m Model) Thread() thread.View {
	return m.view
}
