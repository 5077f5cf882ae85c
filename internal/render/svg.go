// Package render writes an assembled map document as SVG.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/paulmach/orb"

	"boundarymap/internal/atlas"
)

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Write renders doc as an SVG document sized doc.Width x doc.Height pixels.
// Each layer becomes one path styled by its role.
func Write(w io.Writer, doc atlas.Document, styles Styles) error {
	for _, l := range doc.Layers {
		if _, ok := styles[l.Role]; !ok {
			return fmt.Errorf("no style for layer %q", l.Role)
		}
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(doc.Width, doc.Height)
	for _, l := range doc.Layers {
		d := pathData(l.Geometry, canvas.Decimals)
		if d == "" {
			continue
		}
		canvas.Path(d, styles[l.Role].css(), `class="`+string(l.Role)+`"`)
	}
	canvas.End()
	return ew.err
}

// WriteFile renders doc into path. The file only appears once it is
// complete.
func WriteFile(path string, doc atlas.Document, styles Styles) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, doc, styles); err != nil {
		tmp.Close()
		return err
	}
	// CreateTemp uses 0600.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// pathData turns every ring of g into a closed sub-path. Lines stay open.
func pathData(g orb.Geometry, decimals int) string {
	var b strings.Builder
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', decimals, 64) }
	line := func(pts []orb.Point, closed bool) {
		if closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 2 {
			return
		}
		for i, p := range pts {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			b.WriteString(num(p[0]))
			b.WriteByte(',')
			b.WriteString(num(p[1]))
		}
		if closed {
			b.WriteString(" Z")
		}
	}

	var walk func(orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Ring:
			line(g, true)
		case orb.Polygon:
			for _, r := range g {
				line(r, true)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		case orb.LineString:
			line(g, false)
		case orb.MultiLineString:
			for _, ls := range g {
				line(ls, false)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		}
	}
	walk(g)
	return b.String()
}
