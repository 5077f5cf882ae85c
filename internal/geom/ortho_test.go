package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/paulmach/orb"
)

func TestOrthographicCentre(t *testing.T) {
	is := is.New(t)

	proj := Orthographic(orb.Point{21, 52.2})
	c := proj(orb.Point{21, 52.2})
	is.True(math.Abs(c[0]) < 1e-6)
	is.True(math.Abs(c[1]) < 1e-6)
}

func TestOrthographicAxes(t *testing.T) {
	is := is.New(t)

	proj := Orthographic(orb.Point{21, 52.2})

	n := proj(orb.Point{21, 52.21})
	want := EarthRadius * math.Sin(0.01*math.Pi/180)
	is.True(math.Abs(n[0]) < 1e-6)
	is.True(math.Abs(n[1]-want) < 1e-3)

	e := proj(orb.Point{21.01, 52.2})
	is.True(e[0] > 0)
	w := proj(orb.Point{20.99, 52.2})
	is.True(w[0] < 0)
}

func TestReprojectRejectsFarSide(t *testing.T) {
	is := is.New(t)

	proj := Orthographic(orb.Point{0, 0})
	_, err := Reproject(orb.LineString{{0, 0}, {179, 0}}, proj)
	is.True(errors.Is(err, ErrGeometry))
}

func TestReprojectCopies(t *testing.T) {
	is := is.New(t)

	in := square(20.9, 52.1, 21.1, 52.3)
	out, err := Reproject(in, Orthographic(orb.Point{21, 52.2}))
	is.NoErr(err)
	is.Equal(in, square(20.9, 52.1, 21.1, 52.3))

	b, err := GeometryBounds(out)
	is.NoErr(err)
	is.True(b.MinX < 0 && b.MaxX > 0)
	is.True(b.MinY < 0 && b.MaxY > 0)
}

func TestSimplify(t *testing.T) {
	is := is.New(t)

	in := orb.LineString{{0, 0}, {1, 0.001}, {2, 0}, {3, 5}}
	out, err := Simplify(in, 0.1)
	is.NoErr(err)
	is.Equal(out, orb.LineString{{0, 0}, {2, 0}, {3, 5}})
	is.Equal(len(in), 4)
}

func TestSimplifyCollapse(t *testing.T) {
	is := is.New(t)

	_, err := Simplify(square(0, 0, 1, 1), 100)
	is.True(errors.Is(err, ErrGeometry))

	out, err := Simplify(orb.MultiPolygon{square(0, 0, 1, 1), square(0, 0, 1000, 1000)}, 100)
	is.NoErr(err)
	is.Equal(len(out.(orb.MultiPolygon)), 1)
}
