// Package units converts physical quantities (lengths, pixels, resolutions,
// plain ratios) through an explicitly constructed unit registry.
package units

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnit is returned for malformed quantities and dimension mismatches.
var ErrUnit = errors.New("unit error")

// Dimension holds the exponent of every base dimension a unit is made of.
type Dimension struct {
	Length int
	Pixel  int
	Mass   int
	Time   int
}

var (
	Dimensionless = Dimension{}
	Length        = Dimension{Length: 1}
	Pixel         = Dimension{Pixel: 1}
	Resolution    = Dimension{Pixel: 1, Length: -1}
	Mass          = Dimension{Mass: 1}
)

func (d Dimension) mul(o Dimension) Dimension {
	return Dimension{d.Length + o.Length, d.Pixel + o.Pixel, d.Mass + o.Mass, d.Time + o.Time}
}

func (d Dimension) pow(n int) Dimension {
	return Dimension{d.Length * n, d.Pixel * n, d.Mass * n, d.Time * n}
}

func (d Dimension) String() string {
	if d == Dimensionless {
		return "[dimensionless]"
	}
	var parts []string
	add := func(name string, exp int) {
		switch exp {
		case 0:
		case 1:
			parts = append(parts, "["+name+"]")
		default:
			parts = append(parts, fmt.Sprintf("[%s]^%d", name, exp))
		}
	}
	add("length", d.Length)
	add("pixel", d.Pixel)
	add("mass", d.Mass)
	add("time", d.Time)
	return strings.Join(parts, "*")
}

// Unit is a named scale factor relative to the base units m, px, kg and s.
type Unit struct {
	Name   string
	Factor float64
	Dim    Dimension
}

// Quantity is a magnitude tagged with a unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

func (q Quantity) Dimension() Dimension { return q.Unit.Dim }

func (q Quantity) String() string {
	if q.Unit.Name == "" {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit.Name)
}

// Base returns the magnitude expressed in base units.
func (q Quantity) Base() float64 { return q.Value * q.Unit.Factor }

// Mul multiplies two quantities, combining their dimensions.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{
		Value: q.Value * o.Value,
		Unit: Unit{
			Name:   joinName(q.Unit.Name, "*", o.Unit.Name),
			Factor: q.Unit.Factor * o.Unit.Factor,
			Dim:    q.Unit.Dim.mul(o.Unit.Dim),
		},
	}
}

// Div divides q by o, combining their dimensions.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{
		Value: q.Value / o.Value,
		Unit: Unit{
			Name:   joinName(q.Unit.Name, "/", o.Unit.Name),
			Factor: q.Unit.Factor / o.Unit.Factor,
			Dim:    q.Unit.Dim.mul(o.Unit.Dim.pow(-1)),
		},
	}
}

// Scale multiplies the magnitude by a plain number.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{Value: q.Value * f, Unit: q.Unit}
}

// Add sums two quantities of the same dimension; the result is in q's unit.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if q.Unit.Dim != o.Unit.Dim {
		return Quantity{}, fmt.Errorf("%w: cannot add %s to %s", ErrUnit, o.Unit.Dim, q.Unit.Dim)
	}
	return Quantity{Value: q.Value + o.Base()/q.Unit.Factor, Unit: q.Unit}, nil
}

// RequireDimension fails unless q has dimension dim.
func RequireDimension(q Quantity, dim Dimension) error {
	if q.Unit.Dim != dim {
		return fmt.Errorf("%w: %s has dimension %s, expected %s", ErrUnit, q, q.Unit.Dim, dim)
	}
	return nil
}

func joinName(a, op, b string) string {
	switch {
	case a == "" && b == "":
		return ""
	case b == "":
		return a
	case a == "" && op == "*":
		return b
	case a == "":
		return "1/" + wrap(b)
	}
	return a + op + wrap(b)
}

func wrap(s string) string {
	if strings.ContainsAny(s, "*/") {
		return "(" + s + ")"
	}
	return s
}
