package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/paulmach/orb/simplify"
)

// EarthRadius is the sphere radius used by Orthographic, in metres.
const EarthRadius = 6378137.0

// Orthographic returns a spherical orthographic projection centred on
// center (lon, lat in degrees). Output is in metres with x to the east and
// y to the north. Points on the far hemisphere map to NaN.
func Orthographic(center orb.Point) orb.Projection {
	c := unit(center)
	east := r3.Vector{Z: 1}.Cross(c)
	if east.Norm() < 1e-12 {
		east = r3.Vector{Y: 1}
	}
	east = east.Normalize()
	north := c.Cross(east)

	return func(p orb.Point) orb.Point {
		v := unit(p)
		if v.Dot(c) < 0 {
			return orb.Point{math.NaN(), math.NaN()}
		}
		return orb.Point{EarthRadius * v.Dot(east), EarthRadius * v.Dot(north)}
	}
}

func unit(p orb.Point) r3.Vector {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())).Vector
}

// Reproject applies proj to a copy of g.
func Reproject(g orb.Geometry, proj orb.Projection) (orb.Geometry, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nothing to project", ErrGeometry)
	}
	out := project.Geometry(orb.Clone(g), proj)
	for _, p := range points(out) {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
			return nil, fmt.Errorf("%w: point outside the visible hemisphere", ErrGeometry)
		}
	}
	return out, nil
}

// Simplify runs Douglas-Peucker with the given tolerance on a copy of g.
// It fails when nothing drawable is left.
func Simplify(g orb.Geometry, tolerance float64) (orb.Geometry, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nothing to simplify", ErrGeometry)
	}
	out := simplify.DouglasPeucker(tolerance).Simplify(orb.Clone(g))
	if mp, ok := out.(orb.MultiPolygon); ok {
		kept := mp[:0]
		for _, p := range mp {
			if !collapsed(p) {
				kept = append(kept, p)
			}
		}
		out = kept
	}
	if out == nil || collapsed(out) {
		return nil, fmt.Errorf("%w: %s collapsed at tolerance %g", ErrGeometry, g.GeoJSONType(), tolerance)
	}
	return out, nil
}

func collapsed(g orb.Geometry) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return len(g) == 0 || len(g[0]) < 4
	case orb.MultiPolygon:
		for _, p := range g {
			if !collapsed(p) {
				return false
			}
		}
		return true
	case orb.LineString:
		return len(g) < 2
	case orb.MultiLineString:
		for _, ls := range g {
			if len(ls) >= 2 {
				return false
			}
		}
		return true
	}
	return len(points(g)) == 0
}
