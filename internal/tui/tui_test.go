package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/paulmach/orb"

	"boundarymap/internal/atlas"
)

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestPickerChoosesHighlightedRegion(t *testing.T) {
	is := is.New(t)

	m := NewPicker([]string{"Otwock", "Piaseczno", "Warszawa"}, "Warszawa")
	m, cmd := send(m,
		tea.WindowSizeMsg{Width: 60, Height: 20},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	is.Equal(m.Chosen(), "Piaseczno")
	is.True(cmd != nil)
}

func TestPickerHidesReference(t *testing.T) {
	is := is.New(t)

	m := NewPicker([]string{"Piaseczno", "Warszawa"}, "Warszawa")
	is.Equal(len(m.l.Items()), 1)

	m, _ = send(m, tea.WindowSizeMsg{Width: 60, Height: 20})
	view := m.View()
	is.True(strings.Contains(view, "Piaseczno"))
	is.True(strings.Contains(view, "compare against Warszawa"))
}

func TestPickerQuitWithoutChoice(t *testing.T) {
	is := is.New(t)

	m := NewPicker([]string{"Piaseczno"}, "Warszawa")
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	is.Equal(m.Chosen(), "")
	is.True(cmd != nil)
}

func TestBrailleBuf(t *testing.T) {
	is := is.New(t)

	b := newBrailleBuf(2, 1)
	for y := 0; y < 4; y++ {
		b.setPixel(0, y)
		b.setPixel(1, y)
	}
	b.setPixel(2, 0)
	b.setPixel(99, 99)
	is.Equal(b.toLines(), []string{"⣿⠁"})
}

func TestBrailleFillKeepsHoles(t *testing.T) {
	is := is.New(t)

	b := newBrailleBuf(6, 3)
	outer := [][2]int{{0, 0}, {11, 0}, {11, 11}, {0, 11}}
	hole := [][2]int{{4, 4}, {8, 4}, {8, 8}, {4, 8}}
	b.fillRings([][][2]int{outer, hole})

	// centre cell of the hole stays empty, a corner cell is full
	is.Equal(b.m[1][2]&dotBits[2][1], uint8(0))
	is.Equal(b.m[0][0], uint8(0xFF))
}

func TestPreview(t *testing.T) {
	is := is.New(t)

	doc := atlas.Document{
		Width:  200,
		Height: 100,
		Layers: []atlas.Layer{
			{Role: atlas.RiverBank, Geometry: orb.Polygon{{{0, 0}, {200, 0}, {200, 100}, {0, 100}, {0, 0}}}},
			{Role: atlas.ComparisonBoundary, Geometry: orb.Polygon{{{20, 20}, {60, 20}, {60, 60}, {20, 20}}}},
		},
	}
	lines := previewLines(doc, 20)
	is.Equal(len(lines), 5)
	is.True(strings.Contains(lines[2], "⣿"))

	out := Preview(doc, "Piaseczno", 20)
	is.True(strings.Contains(out, "Piaseczno"))
	is.True(strings.Contains(out, "200x100 px"))
}

func TestPreviewEmpty(t *testing.T) {
	is := is.New(t)
	lines := previewLines(atlas.Document{}, 20)
	is.Equal(len(lines), 1)
}
