package geom

import (
	"fmt"
	"math"

	cgeom "github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ExtractDominantArea unions every polygonal geometry in fs and returns the
// largest disjoint part of the union, without holes. Line features are
// ignored. Equal areas resolve to the part holding the earliest input polygon.
func ExtractDominantArea(fs Features) (orb.Polygon, error) {
	var parts []orb.Polygon
	for _, f := range fs {
		if f == nil {
			continue
		}
		parts = append(parts, polygons(f.Geometry)...)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no area geometry found", ErrGeometry)
	}

	var union cgeom.Polygonal = toClip(parts[0])
	for _, p := range parts[1:] {
		union = union.Union(toClip(p))
	}

	var best orb.Polygon
	bestArea, bestFirst := -1.0, len(parts)
	for _, p := range fromClip(union) {
		outer := orb.Polygon{p[0]}
		a, first := planar.Area(outer), firstInput(parts, p[0])
		if a > bestArea || (a == bestArea && first < bestFirst) {
			best, bestArea, bestFirst = outer, a, first
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no area geometry found", ErrGeometry)
	}
	return best, nil
}

// Intersect returns the area shared by a and b. Holes stay attached to the
// outer ring that contains them.
func Intersect(a, b orb.Geometry) (orb.MultiPolygon, error) {
	pa, pb := polygons(a), polygons(b)
	if len(pa) == 0 || len(pb) == 0 {
		return nil, fmt.Errorf("%w: intersection needs two areas", ErrGeometry)
	}
	res := fromClip(toClip(pa...).Intersection(toClip(pb...)))
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: empty intersection", ErrGeometry)
	}
	return res, nil
}

// firstInput is the index of the earliest input polygon lying in outer.
func firstInput(parts []orb.Polygon, outer orb.Ring) int {
	for i, p := range parts {
		for _, pt := range p[0] {
			if planar.RingContains(outer, pt) {
				return i
			}
		}
	}
	return len(parts)
}

func polygons(g orb.Geometry) []orb.Polygon {
	switch g := g.(type) {
	case orb.Polygon:
		if len(g) > 0 && len(g[0]) >= 3 {
			return []orb.Polygon{g}
		}
	case orb.MultiPolygon:
		var out []orb.Polygon
		for _, p := range g {
			out = append(out, polygons(p)...)
		}
		return out
	case orb.Collection:
		var out []orb.Polygon
		for _, c := range g {
			out = append(out, polygons(c)...)
		}
		return out
	}
	return nil
}

// toClip flattens polygons into one clipping polygon. Closing points are
// dropped; the clipper closes paths implicitly.
func toClip(ps ...orb.Polygon) cgeom.Polygon {
	var out cgeom.Polygon
	for _, p := range ps {
		for _, r := range p {
			if r.Closed() && len(r) > 1 {
				r = r[:len(r)-1]
			}
			if len(r) < 3 {
				continue
			}
			path := make(cgeom.Path, len(r))
			for i, pt := range r {
				path[i] = cgeom.Point{X: pt[0], Y: pt[1]}
			}
			out = append(out, path)
		}
	}
	return out
}

// fromClip rebuilds polygons from clipper output. Rings nested at an even
// depth are outer rings; odd ones are holes of the smallest ring around them.
func fromClip(p cgeom.Polygonal) orb.MultiPolygon {
	var paths []cgeom.Path
	if p != nil {
		for _, poly := range p.Polygons() {
			paths = append(paths, poly...)
		}
	}

	var rings []orb.Ring
	for _, path := range paths {
		r := make(orb.Ring, 0, len(path)+1)
		for _, pt := range path {
			r = append(r, orb.Point{pt.X, pt.Y})
		}
		if len(r) > 0 && !r.Closed() {
			r = append(r, r[0])
		}
		if len(r) < 4 || math.Abs(planar.Area(r)) == 0 {
			continue
		}
		rings = append(rings, r)
	}

	depth := make([]int, len(rings))
	parent := make([]int, len(rings))
	for i := range rings {
		parent[i] = -1
		probe := rings[i][0]
		for j := range rings {
			if i == j || !planar.RingContains(rings[j], probe) {
				continue
			}
			depth[i]++
			if parent[i] < 0 || math.Abs(planar.Area(rings[j])) < math.Abs(planar.Area(rings[parent[i]])) {
				parent[i] = j
			}
		}
	}

	var mp orb.MultiPolygon
	index := map[int]int{}
	for i, r := range rings {
		if depth[i]%2 == 0 {
			index[i] = len(mp)
			mp = append(mp, orb.Polygon{r})
		}
	}
	for i, r := range rings {
		if depth[i]%2 == 0 {
			continue
		}
		if k, ok := index[parent[i]]; ok {
			mp[k] = append(mp[k], r)
		}
	}
	return mp
}
