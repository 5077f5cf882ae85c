package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"

	"boundarymap/internal/atlas"
)

// filledRoles are painted solid in the preview; every other layer is drawn
// as an outline.
var filledRoles = map[atlas.Role]bool{atlas.RiverBank: true}

// Preview draws doc with braille characters, width cells wide, inside a
// titled frame. Each cell takes the colour of the topmost layer touching it.
func Preview(doc atlas.Document, title string, width int) string {
	body := previewLines(doc, max(width, 4))
	header := titleStyle.Render(title) + dimStyle.Render(fmt.Sprintf("  %.0fx%.0f px", doc.Width, doc.Height))
	return boxStyle.Render(header + "\n" + strings.Join(body, "\n"))
}

func previewLines(doc atlas.Document, width int) []string {
	if !(doc.Width > 0 && doc.Height > 0) {
		return []string{dimStyle.Render("(empty map)")}
	}
	scale := float64(width*2-1) / doc.Width
	height := int(math.Ceil(doc.Height * scale / 4))
	if height < 1 {
		height = 1
	}

	type layerBuf struct {
		role atlas.Role
		buf  *brailleBuf
	}
	var bufs []layerBuf
	for _, l := range doc.Layers {
		b := newBrailleBuf(width, height)
		rings, lines := microShapes(l.Geometry, scale)
		if filledRoles[l.Role] {
			b.fillRings(rings)
		}
		for _, r := range rings {
			b.strokeRing(r)
		}
		for _, ls := range lines {
			for i := 1; i < len(ls); i++ {
				b.drawLineMicro(ls[i-1][0], ls[i-1][1], ls[i][0], ls[i][1])
			}
		}
		bufs = append(bufs, layerBuf{l.Role, b})
	}

	out := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			var mask uint8
			var top atlas.Role
			for _, lb := range bufs {
				if m := lb.buf.m[y][x]; m != 0 {
					mask |= m
					top = lb.role
				}
			}
			r := string(cellRune(mask))
			if st, ok := roleStyles[top]; ok && mask != 0 {
				r = st.Render(r)
			}
			sb.WriteString(r)
		}
		out[y] = sb.String()
	}
	return out
}

// microShapes scales page pixels onto the braille micro grid.
func microShapes(g orb.Geometry, scale float64) (rings, lines [][][2]int) {
	conv := func(pts []orb.Point) [][2]int {
		out := make([][2]int, 0, len(pts))
		for _, p := range pts {
			out = append(out, [2]int{int(p[0] * scale), int(p[1] * scale)})
		}
		return out
	}
	var walk func(orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Ring:
			if len(g) >= 3 {
				rings = append(rings, conv(g))
			}
		case orb.Polygon:
			for _, r := range g {
				walk(r)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		case orb.LineString:
			lines = append(lines, conv(g))
		case orb.MultiLineString:
			for _, ls := range g {
				lines = append(lines, conv(ls))
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		}
	}
	walk(g)
	return rings, lines
}
