package geom

import (
	"errors"

	"github.com/paulmach/orb"
)

// ErrGeometry reports empty, degenerate or otherwise unusable geometry.
var ErrGeometry = errors.New("geometry error")

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Bound converts the box to an orb.Bound.
func (b BBox) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
}

// FromBound converts an orb.Bound to a box.
func FromBound(b orb.Bound) BBox {
	return BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// points returns every vertex of g in storage order.
func points(g orb.Geometry) []orb.Point {
	var out []orb.Point
	var walk func(orb.Geometry)
	walk = func(g orb.Geometry) {
		switch g := g.(type) {
		case orb.Point:
			out = append(out, g)
		case orb.MultiPoint:
			out = append(out, g...)
		case orb.LineString:
			out = append(out, g...)
		case orb.Ring:
			out = append(out, g...)
		case orb.MultiLineString:
			for _, ls := range g {
				out = append(out, ls...)
			}
		case orb.Polygon:
			for _, r := range g {
				out = append(out, r...)
			}
		case orb.MultiPolygon:
			for _, p := range g {
				walk(p)
			}
		case orb.Collection:
			for _, c := range g {
				walk(c)
			}
		case orb.Bound:
			out = append(out, g.Min, g.Max)
		}
	}
	walk(g)
	return out
}
