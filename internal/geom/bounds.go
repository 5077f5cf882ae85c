package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"seehuhn.de/go/geom/matrix"
)

// BoundsOf returns the extrema of pts.
func BoundsOf(pts []orb.Point) (BBox, error) {
	if len(pts) == 0 {
		return BBox{}, fmt.Errorf("%w: no coordinates", ErrGeometry)
	}
	b := BBox{MinX: pts[0][0], MinY: pts[0][1], MaxX: pts[0][0], MaxY: pts[0][1]}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p[0])
		b.MinY = math.Min(b.MinY, p[1])
		b.MaxX = math.Max(b.MaxX, p[0])
		b.MaxY = math.Max(b.MaxY, p[1])
	}
	return b, nil
}

// GeometryBounds returns the extrema of every vertex of g.
func GeometryBounds(g orb.Geometry) (BBox, error) {
	return BoundsOf(points(g))
}

// Merge returns the smallest box containing every box. ok is false when no
// boxes are given.
func Merge(boxes ...BBox) (b BBox, ok bool) {
	if len(boxes) == 0 {
		return BBox{}, false
	}
	b = boxes[0]
	for _, o := range boxes[1:] {
		b.MinX = math.Min(b.MinX, o.MinX)
		b.MinY = math.Min(b.MinY, o.MinY)
		b.MaxX = math.Max(b.MaxX, o.MaxX)
		b.MaxY = math.Max(b.MaxY, o.MaxY)
	}
	return b, true
}

// FitMatrix maps the corners of src onto the corners of dst, scaling each
// axis independently.
func FitMatrix(src, dst BBox) (matrix.Matrix, error) {
	if src.Width() == 0 || src.Height() == 0 {
		return matrix.Matrix{}, fmt.Errorf("%w: source box has zero size %gx%g", ErrGeometry, src.Width(), src.Height())
	}
	sx := dst.Width() / src.Width()
	sy := dst.Height() / src.Height()
	return matrix.Translate(-src.MinX, -src.MinY).
		Scale(sx, sy).
		Translate(dst.MinX, dst.MinY), nil
}

// Fit maps g from the src frame into the dst frame. The aspect ratio is not
// preserved when the boxes differ in shape.
func Fit(g orb.Geometry, src, dst BBox) (orb.Geometry, error) {
	m, err := FitMatrix(src, dst)
	if err != nil {
		return nil, err
	}
	return Transform(g, m), nil
}

// FlipMatrix mirrors y within page, so that y grows downwards.
func FlipMatrix(page BBox) matrix.Matrix {
	return matrix.Scale(1, -1).Translate(0, page.MinY+page.MaxY)
}

func FlipVertical(g orb.Geometry, page BBox) orb.Geometry {
	return Transform(g, FlipMatrix(page))
}

// Transform applies the affine matrix m to a copy of g.
func Transform(g orb.Geometry, m matrix.Matrix) orb.Geometry {
	if g == nil {
		return nil
	}
	return project.Geometry(orb.Clone(g), func(p orb.Point) orb.Point {
		x, y := m.Apply(p[0], p[1])
		return orb.Point{x, y}
	})
}
