package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	footerHeight = 2
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(max(10, m.width-2), max(4, m.height-headerHeight-footerHeight-2))
	case tea.KeyMsg:
		// While filtering, keys belong to the list.
		if m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if msg.String() == "esc" && m.l.FilterState() == list.FilterApplied {
			m.l.ResetFilter()
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.chosen = ""
			return m, tea.Quit
		case "enter":
			if it, ok := m.l.SelectedItem().(regionItem); ok {
				m.chosen = string(it)
				return m, tea.Quit
			}
			m.status = "nothing to choose"
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.l, cmd = m.l.Update(msg)
	return m, cmd
}
