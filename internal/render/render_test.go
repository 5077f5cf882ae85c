package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/paulmach/orb"

	"boundarymap/internal/atlas"
)

func testDocument() atlas.Document {
	outer := orb.Ring{{10, 10}, {90, 10}, {90, 40}, {10, 40}, {10, 10}}
	hole := orb.Ring{{40, 20}, {60, 20}, {60, 30}, {40, 30}, {40, 20}}
	return atlas.Document{
		Width:  100,
		Height: 50,
		Layers: []atlas.Layer{
			{Role: atlas.RiverBank, Geometry: orb.MultiPolygon{{outer, hole}}},
			{Role: atlas.ReferenceBoundary, Geometry: orb.Polygon{outer}},
			{Role: atlas.ComparisonBoundary, Geometry: orb.Polygon{{{0, 0}, {5, 0}, {5, 5}, {0, 0}}}},
			{Role: atlas.ReferenceOutline, Geometry: orb.Polygon{outer}},
		},
	}
}

func TestWrite(t *testing.T) {
	is := is.New(t)

	var buf bytes.Buffer
	is.NoErr(Write(&buf, testDocument(), DefaultStyles()))
	out := buf.String()

	is.True(strings.Contains(out, `width="100.00"`))
	is.True(strings.Contains(out, `height="50.00"`))
	is.Equal(strings.Count(out, "<path "), 4)
	is.True(strings.HasSuffix(strings.TrimSpace(out), "</svg>"))

	// layers keep their order
	last := -1
	for _, r := range atlas.Roles {
		i := strings.Index(out, `class="`+string(r)+`"`)
		is.True(i > last)
		last = i
	}
}

func TestWriteKeepsHolesAsSubpaths(t *testing.T) {
	is := is.New(t)

	d := pathData(orb.Polygon{
		{{10, 10}, {90, 10}, {90, 40}, {10, 10}},
		{{40, 20}, {60, 20}, {60, 30}, {40, 20}},
	}, 2)
	is.Equal(d, "M10.00,10.00 L90.00,10.00 L90.00,40.00 Z M40.00,20.00 L60.00,20.00 L60.00,30.00 Z")

	var buf bytes.Buffer
	is.NoErr(Write(&buf, testDocument(), DefaultStyles()))
	is.True(strings.Contains(buf.String(), "fill-rule:evenodd"))
}

func TestWriteRequiresStyleForEveryLayer(t *testing.T) {
	is := is.New(t)

	styles := DefaultStyles()
	delete(styles, atlas.ComparisonBoundary)

	var buf bytes.Buffer
	err := Write(&buf, testDocument(), styles)
	is.True(err != nil)
	is.Equal(buf.Len(), 0)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsWriterErrors(t *testing.T) {
	is := is.New(t)
	err := Write(failingWriter{}, testDocument(), DefaultStyles())
	is.True(err != nil)
}

func TestWriteFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "Piaseczno.svg")

	is.NoErr(WriteFile(path, testDocument(), DefaultStyles()))
	data, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(bytes.Contains(data, []byte("<svg")))

	info, err := os.Stat(path)
	is.NoErr(err)
	is.Equal(info.Mode().Perm(), os.FileMode(0o644))

	entries, err := os.ReadDir(dir)
	is.NoErr(err)
	is.Equal(len(entries), 1)
}

func TestWriteFileLeavesNothingOnFailure(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.svg")

	err := WriteFile(path, testDocument(), Styles{})
	is.True(err != nil)

	entries, err := os.ReadDir(dir)
	is.NoErr(err)
	is.Equal(len(entries), 0)
}

func TestLoadStyles(t *testing.T) {
	is := is.New(t)

	styles, err := LoadStyles(strings.NewReader(`
comparison-boundary:
  stroke: "#1f78b4"
  stroke-width: 3
river-bank:
  fill: none
`))
	is.NoErr(err)

	def := DefaultStyles()
	is.Equal(styles[atlas.ComparisonBoundary].Stroke, "#1f78b4")
	is.Equal(styles[atlas.ComparisonBoundary].StrokeWidth, 3.0)
	is.Equal(styles[atlas.ComparisonBoundary].LineJoin, def[atlas.ComparisonBoundary].LineJoin)
	is.Equal(styles[atlas.RiverBank].Fill, "none")
	is.Equal(styles[atlas.ReferenceOutline], def[atlas.ReferenceOutline])
}

func TestLoadStylesEmpty(t *testing.T) {
	is := is.New(t)
	styles, err := LoadStyles(strings.NewReader(""))
	is.NoErr(err)
	is.Equal(len(styles), len(atlas.Roles))
}

func TestLoadStylesRejectsUnknown(t *testing.T) {
	is := is.New(t)

	_, err := LoadStyles(strings.NewReader("lake:\n  fill: blue\n"))
	is.True(err != nil)

	_, err = LoadStyles(strings.NewReader("river-bank:\n  colour: blue\n"))
	is.True(err != nil)

	_, err = LoadStyles(strings.NewReader("river-bank:\n  line-join: wobbly\n"))
	is.True(err != nil)
}
