package atlas

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"boundarymap/internal/geom"
	"boundarymap/internal/units"
)

const (
	DefaultReference = "Warszawa"
	DefaultNameKey   = "name"
	DefaultScale     = 5e-6
)

// Request describes one map. DPI must be a resolution and Margin a length.
type Request struct {
	Reference  string
	Comparison string
	NameKey    string
	Scale      float64
	DPI        units.Quantity
	Margin     units.Quantity
}

func (r Request) withDefaults() Request {
	if r.Reference == "" {
		r.Reference = DefaultReference
	}
	if r.NameKey == "" {
		r.NameKey = DefaultNameKey
	}
	return r
}

// Assemble runs the whole pipeline and returns a document ready to render.
func Assemble(reg *units.Registry, boundaries, rivers geom.Features, req Request) (Document, error) {
	req = req.withDefaults()
	log := slog.With("reference", req.Reference, "comparison", req.Comparison)

	if err := validate(req); err != nil {
		return Document{}, err
	}

	start := time.Now()
	reference, err := lookup(boundaries, req.NameKey, req.Reference)
	if err != nil {
		return Document{}, err
	}
	comparison, err := lookup(boundaries, req.NameKey, req.Comparison)
	if err != nil {
		return Document{}, err
	}
	log.Debug("selected regions", "took", time.Since(start))

	start = time.Now()
	river, err := geom.ExtractDominantArea(rivers)
	if err != nil {
		return Document{}, fmt.Errorf("river: %w", err)
	}
	riverIn, err := geom.Intersect(river, reference)
	if err != nil {
		return Document{}, fmt.Errorf("river within %s: %w", req.Reference, err)
	}
	log.Debug("extracted river", "parts", len(riverIn), "took", time.Since(start))

	center, _ := planar.CentroidArea(reference)
	proj := geom.Orthographic(center)

	tolerance, err := simplifyTolerance(reg, req)
	if err != nil {
		return Document{}, err
	}

	start = time.Now()
	sources := []struct {
		role Role
		g    orb.Geometry
	}{
		{RiverBank, riverIn},
		{ReferenceBoundary, reference},
		{ComparisonBoundary, comparison},
		{ReferenceOutline, reference},
	}
	layers := make([]Layer, 0, len(sources))
	boxes := make([]geom.BBox, 0, len(sources))
	for _, s := range sources {
		g, err := geom.Reproject(s.g, proj)
		if err != nil {
			return Document{}, fmt.Errorf("%s: %w", s.role, err)
		}
		g, err = geom.Simplify(g, tolerance)
		if err != nil {
			return Document{}, fmt.Errorf("%s: %w", s.role, err)
		}
		b, err := geom.GeometryBounds(g)
		if err != nil {
			return Document{}, fmt.Errorf("%s: %w", s.role, err)
		}
		layers = append(layers, Layer{Role: s.role, Geometry: g})
		boxes = append(boxes, b)
	}
	log.Debug("projected and simplified", "tolerance_m", tolerance, "took", time.Since(start))

	src, _ := geom.Merge(boxes...)
	width, height, margin, err := pageSize(reg, req, src)
	if err != nil {
		return Document{}, err
	}

	page, interior, err := frame(width, height, margin)
	if err != nil {
		return Document{}, err
	}
	for i, l := range layers {
		g, err := geom.Fit(l.Geometry, src, interior)
		if err != nil {
			return Document{}, fmt.Errorf("%s: %w", l.Role, err)
		}
		layers[i].Geometry = geom.FlipVertical(g, page)
	}

	log.Debug("fitted page", "width_px", width, "height_px", height)
	return Document{Width: width, Height: height, Layers: layers}, nil
}

func validate(req Request) error {
	if !(req.Scale > 0) || math.IsInf(req.Scale, 0) {
		return fmt.Errorf("%w: scale must be positive, got %g", units.ErrUnit, req.Scale)
	}
	if err := units.RequireDimension(req.DPI, units.Resolution); err != nil {
		return fmt.Errorf("dpi: %w", err)
	}
	if b := req.DPI.Base(); !(b > 0) || math.IsInf(b, 0) {
		return fmt.Errorf("%w: dpi must be positive and finite, got %s", units.ErrUnit, req.DPI)
	}
	if err := units.RequireDimension(req.Margin, units.Length); err != nil {
		return fmt.Errorf("margin: %w", err)
	}
	if b := req.Margin.Base(); !(b >= 0) || math.IsInf(b, 0) {
		return fmt.Errorf("%w: margin must be finite and not negative, got %s", units.ErrUnit, req.Margin)
	}
	return nil
}

// frame returns the page box and the part of it left inside the margins.
func frame(width, height, margin float64) (page, interior geom.BBox, err error) {
	page = geom.BBox{MaxX: width, MaxY: height}
	interior = geom.BBox{MinX: margin, MinY: margin, MaxX: width - margin, MaxY: height - margin}
	if !(interior.Width() > 0 && interior.Height() > 0) {
		return page, interior, fmt.Errorf("%w: no room inside margins of %.2f px on a %.2fx%.2f px page",
			geom.ErrGeometry, margin, width, height)
	}
	return page, interior, nil
}

// lookup returns the geometry of the single feature whose key equals name.
func lookup(fs geom.Features, key, name string) (orb.Geometry, error) {
	matches := geom.Select(fs, key, geom.Equals(name))
	if len(matches) != 1 {
		return nil, &LookupError{
			Key:       key,
			Name:      name,
			Matches:   len(matches),
			Available: geom.Names(fs, key),
		}
	}
	return matches[0].Geometry, nil
}

// simplifyTolerance is the length, in metres on the ground, that two output
// pixels cover at the requested scale and resolution.
func simplifyTolerance(reg *units.Registry, req Request) (float64, error) {
	two, err := reg.Quantity(2, "px")
	if err != nil {
		return 0, err
	}
	return reg.Magnitude(two.Div(req.DPI.Scale(req.Scale)), "m")
}

// pageSize returns the page width, height and margin in pixels for a map of
// src metres: scale × size × dpi + 2 × margin.
func pageSize(reg *units.Registry, req Request, src geom.BBox) (width, height, margin float64, err error) {
	marginPx := req.DPI.Mul(req.Margin)
	margin, err = reg.Magnitude(marginPx, "px")
	if err != nil {
		return 0, 0, 0, err
	}

	side := func(metres float64) (float64, error) {
		length, err := reg.Quantity(metres, "m")
		if err != nil {
			return 0, err
		}
		total, err := req.DPI.Mul(length.Scale(req.Scale)).Add(marginPx.Scale(2))
		if err != nil {
			return 0, err
		}
		return reg.Magnitude(total, "px")
	}
	if width, err = side(src.Width()); err != nil {
		return 0, 0, 0, err
	}
	if height, err = side(src.Height()); err != nil {
		return 0, 0, 0, err
	}
	return width, height, margin, nil
}
