// Package tui holds the terminal surfaces of boundarymap: the interactive
// region picker and the braille preview of a rendered map.
package tui

import (
	"errors"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the picker is closed without a choice.
var ErrCancelled = errors.New("no region chosen")

type regionItem string

func (r regionItem) Title() string       { return string(r) }
func (r regionItem) Description() string { return "" }
func (r regionItem) FilterValue() string { return string(r) }

// Model lets the user filter and choose a comparison region.
type Model struct {
	width  int
	height int

	reference string
	l         list.Model

	chosen string
	status string
}

// NewPicker lists names except the reference region itself.
func NewPicker(names []string, reference string) Model {
	var items []list.Item
	for _, n := range names {
		if n == reference {
			continue
		}
		items = append(items, regionItem(n))
	}

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m := Model{
		reference: reference,
		l:         list.New(items, d, 0, 0),
		status:    "compare against " + reference,
	}
	m.l.Title = "Regions"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Chosen is the selected region, empty until the user confirms one.
func (m Model) Chosen() string { return m.chosen }

// PickRegion runs the picker until a region is chosen or the user quits.
func PickRegion(names []string, reference string, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(NewPicker(names, reference), opts...).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(Model)
	if !ok || m.chosen == "" {
		return "", ErrCancelled
	}
	return m.chosen, nil
}
