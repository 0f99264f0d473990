package bootstrap

import (
	tea "github.com/charmbracelet/bubbletea"

	uploadsview "dochub/internal/ui/views/uploads"
)

// uploadModel hosts the uploads view as a standalone inline program
// for `dochub upload`. It exits once the job reaches a terminal state.
type uploadModel struct {
	view uploadsview.Model
	done bool
}

func newUploadProgram() uploadModel {
	return uploadModel{view: uploadsview.New(nil)}
}

func (m uploadModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m uploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Quitting early cancels the job via the caller's context.
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case uploadsview.DoneMsg:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		m.done = true
		return m, tea.Batch(cmd, tea.Quit)
	}
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m uploadModel) View() string {
	return m.view.View()
}
