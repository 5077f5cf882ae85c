package units

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Registry maps unit names to units. Each registry is independent; there is
// no process-wide table.
type Registry struct {
	units map[string]Unit
}

var (
	numberPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	// numericTerm is a bare factor inside a unit expression. Signs are not
	// allowed there; a unit never has a negative size.
	numericTerm = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// NewRegistry returns a registry with the length, pixel, resolution, mass and
// time units the map pipeline works with.
func NewRegistry() *Registry {
	r := &Registry{units: map[string]Unit{}}

	r.base("m", Length, "meter", "metre", "meters", "metres")
	r.base("px", Pixel, "pixel", "pixels", "dot", "dots")
	r.base("kg", Mass, "kilogram", "kilograms")
	r.base("s", Dimension{Time: 1}, "second", "seconds")

	defs := []struct{ name, expr string }{
		{"cm", "0.01 m"},
		{"mm", "0.001 m"},
		{"km", "1000 m"},
		{"in", "0.0254 m"},
		{"ft", "12 in"},
		{"pt", "1 in/72"},
		{"g", "0.001 kg"},
		{"dpi", "1 px/in"},
		{"dpcm", "1 px/cm"},
		{"ppm", "1 px/m"},
	}
	for _, d := range defs {
		if err := r.Define(d.name, d.expr); err != nil {
			panic(err)
		}
	}
	aliases := map[string]string{
		"centimeter": "cm", "centimeters": "cm", "centimetre": "cm",
		"millimeter": "mm", "millimeters": "mm", "millimetre": "mm",
		"kilometer": "km", "kilometers": "km", "kilometre": "km",
		"inch": "in", "inches": "in",
		"foot": "ft", "feet": "ft",
		"point": "pt", "points": "pt",
		"gram": "g", "grams": "g",
	}
	for alias, name := range aliases {
		u := r.units[name]
		u.Name = alias
		r.units[alias] = u
	}
	return r
}

func (r *Registry) base(name string, dim Dimension, aliases ...string) {
	r.units[name] = Unit{Name: name, Factor: 1, Dim: dim}
	for _, a := range aliases {
		r.units[a] = Unit{Name: a, Factor: 1, Dim: dim}
	}
}

// Define adds a unit to this registry only. expr is a quantity such as
// "2.54 cm" or "1 px/in".
func (r *Registry) Define(name, expr string) error {
	name = strings.TrimSpace(name)
	if name == "" || numberPrefix.MatchString(name) || strings.ContainsAny(name, "*/^ ") {
		return fmt.Errorf("%w: invalid unit name %q", ErrUnit, name)
	}
	if _, ok := r.units[name]; ok {
		return fmt.Errorf("%w: unit %q already defined", ErrUnit, name)
	}
	q, err := r.ParseQuantity(expr)
	if err != nil {
		return err
	}
	if f := q.Base(); !finite(f) || f <= 0 {
		return fmt.Errorf("%w: unit %q must be a positive finite size, got %s", ErrUnit, name, q)
	}
	r.units[name] = Unit{Name: name, Factor: q.Base(), Dim: q.Unit.Dim}
	return nil
}

// Unit parses a unit expression: unit names joined by '*' and '/', each with
// an optional integer exponent ("m^2", "px/in"). Evaluation is left to right.
func (r *Registry) Unit(expr string) (Unit, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Unit{Factor: 1}, nil
	}

	u := Unit{Name: expr, Factor: 1}
	op := byte('*')
	rest := expr
	for {
		i := strings.IndexAny(rest, "*/")
		term := rest
		if i >= 0 {
			term = rest[:i]
		}
		tu, err := r.term(strings.TrimSpace(term))
		if err != nil {
			return Unit{}, err
		}
		if op == '*' {
			u.Factor *= tu.Factor
			u.Dim = u.Dim.mul(tu.Dim)
		} else {
			u.Factor /= tu.Factor
			u.Dim = u.Dim.mul(tu.Dim.pow(-1))
		}
		if i < 0 {
			break
		}
		op = rest[i]
		rest = rest[i+1:]
	}
	if !finite(u.Factor) || u.Factor == 0 {
		return Unit{}, fmt.Errorf("%w: %q is out of range", ErrUnit, expr)
	}
	return u, nil
}

func (r *Registry) term(t string) (Unit, error) {
	if t == "" {
		return Unit{}, fmt.Errorf("%w: empty unit term", ErrUnit)
	}
	exp := 1
	if i := strings.IndexByte(t, '^'); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(t[i+1:]))
		if err != nil {
			return Unit{}, fmt.Errorf("%w: bad exponent in %q", ErrUnit, t)
		}
		exp = n
		t = strings.TrimSpace(t[:i])
	}
	if numericTerm.MatchString(t) {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil || v == 0 {
			return Unit{}, fmt.Errorf("%w: bad factor %q", ErrUnit, t)
		}
		return Unit{Factor: pow(v, exp)}, nil
	}
	u, ok := r.units[t]
	if !ok {
		return Unit{}, fmt.Errorf("%w: unknown unit %q", ErrUnit, t)
	}
	return Unit{Name: u.Name, Factor: pow(u.Factor, exp), Dim: u.Dim.pow(exp)}, nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func pow(v float64, n int) float64 {
	res := 1.0
	if n < 0 {
		v, n = 1/v, -n
	}
	for ; n > 0; n-- {
		res *= v
	}
	return res
}

// ParseQuantity parses text such as "2cm", "2 cm", "100 dpi" or "5e-6".
// A bare unit name means one of that unit.
func (r *Registry) ParseQuantity(text string) (Quantity, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Quantity{}, fmt.Errorf("%w: empty quantity", ErrUnit)
	}

	value := 1.0
	if m := numberPrefix.FindString(s); m != "" {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return Quantity{}, fmt.Errorf("%w: bad number in %q", ErrUnit, text)
		}
		value = v
		s = strings.TrimSpace(s[len(m):])
	} else if strings.ContainsAny(s[:1], "+-.0123456789") {
		return Quantity{}, fmt.Errorf("%w: bad number in %q", ErrUnit, text)
	}

	u, err := r.Unit(s)
	if err != nil {
		return Quantity{}, fmt.Errorf("parse %q: %w", text, err)
	}
	return Quantity{Value: value, Unit: u}, nil
}

// Quantity builds a quantity from a magnitude and a unit expression.
func (r *Registry) Quantity(value float64, expr string) (Quantity, error) {
	u, err := r.Unit(expr)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: value, Unit: u}, nil
}

// Convert expresses q in the unit given by expr. The dimensions must match.
func (r *Registry) Convert(q Quantity, expr string) (Quantity, error) {
	u, err := r.Unit(expr)
	if err != nil {
		return Quantity{}, err
	}
	if u.Dim != q.Unit.Dim {
		return Quantity{}, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)", ErrUnit, q, q.Unit.Dim, expr, u.Dim)
	}
	return Quantity{Value: q.Base() / u.Factor, Unit: u}, nil
}

// Magnitude converts q and returns only the number.
func (r *Registry) Magnitude(q Quantity, expr string) (float64, error) {
	c, err := r.Convert(q, expr)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}
