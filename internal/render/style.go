package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"boundarymap/internal/atlas"
)

// Style is how one layer is painted. "none" disables stroke or fill.
type Style struct {
	Stroke      string
	Fill        string
	StrokeWidth float64
	LineJoin    string
}

// Styles assigns a style to every role.
type Styles map[atlas.Role]Style

func DefaultStyles() Styles {
	return Styles{
		atlas.RiverBank:          {Stroke: "none", Fill: "#9ecae1"},
		atlas.ReferenceBoundary:  {Stroke: "none", Fill: "#f2efe9"},
		atlas.ComparisonBoundary: {Stroke: "#d7301f", Fill: "none", StrokeWidth: 2, LineJoin: "round"},
		atlas.ReferenceOutline:   {Stroke: "#404040", Fill: "none", StrokeWidth: 1, LineJoin: "round"},
	}
}

func (s Style) css() string {
	stroke, fill := s.Stroke, s.Fill
	if stroke == "" {
		stroke = "none"
	}
	if fill == "" {
		fill = "none"
	}
	parts := []string{"fill:" + fill, "fill-rule:evenodd", "stroke:" + stroke}
	if stroke != "none" {
		parts = append(parts, fmt.Sprintf("stroke-width:%g", s.StrokeWidth))
		if s.LineJoin != "" {
			parts = append(parts, "stroke-linejoin:"+s.LineJoin)
		}
	}
	return strings.Join(parts, ";")
}

func (s Style) validate() error {
	if s.StrokeWidth < 0 {
		return fmt.Errorf("negative stroke width %g", s.StrokeWidth)
	}
	switch s.LineJoin {
	case "", "miter", "round", "bevel":
	default:
		return fmt.Errorf("unknown line join %q", s.LineJoin)
	}
	return nil
}

type styleOverride struct {
	Stroke      *string  `yaml:"stroke"`
	Fill        *string  `yaml:"fill"`
	StrokeWidth *float64 `yaml:"stroke-width"`
	LineJoin    *string  `yaml:"line-join"`
}

// LoadStyles reads a YAML table of role to style and lays it over the
// defaults. Fields left out keep their default value.
//
//	comparison-boundary:
//	  stroke: "#1f78b4"
//	  stroke-width: 3
func LoadStyles(r io.Reader) (Styles, error) {
	var overrides map[string]styleOverride
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&overrides); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode styles: %w", err)
	}

	styles := DefaultStyles()
	for name, o := range overrides {
		role, err := atlas.ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("styles: %w", err)
		}
		s := styles[role]
		if o.Stroke != nil {
			s.Stroke = *o.Stroke
		}
		if o.Fill != nil {
			s.Fill = *o.Fill
		}
		if o.StrokeWidth != nil {
			s.StrokeWidth = *o.StrokeWidth
		}
		if o.LineJoin != nil {
			s.LineJoin = *o.LineJoin
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("styles: %s: %w", role, err)
		}
		styles[role] = s
	}
	return styles, nil
}

func LoadStylesFile(path string) (Styles, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadStyles(f)
}
