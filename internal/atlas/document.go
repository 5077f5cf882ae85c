// Package atlas assembles the boundary map: it picks the regions, extracts
// the river, projects and simplifies everything and fits it onto a page.
package atlas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// Role names what a layer depicts. Styles are looked up by role.
type Role string

const (
	RiverBank          Role = "river-bank"
	ReferenceBoundary  Role = "reference-boundary"
	ComparisonBoundary Role = "comparison-boundary"
	ReferenceOutline   Role = "reference-outline"
)

// Roles lists every role in drawing order.
var Roles = []Role{RiverBank, ReferenceBoundary, ComparisonBoundary, ReferenceOutline}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Layer struct {
	Role     Role
	Geometry orb.Geometry
}

// Document is a page in pixel units with its layers in drawing order.
// Coordinates grow to the right and downwards.
type Document struct {
	Width  float64
	Height float64
	Layers []Layer
}

var ErrLookup = errors.New("region lookup failed")

// LookupError reports a region name that matched zero or several features.
type LookupError struct {
	Key       string
	Name      string
	Matches   int
	Available []string
}

func (e *LookupError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("no region with %s=%q, available: %s", e.Key, e.Name, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("%d regions with %s=%q, expected exactly one", e.Matches, e.Key, e.Name)
}

func (e *LookupError) Unwrap() error { return ErrLookup }
