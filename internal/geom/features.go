package geom

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"
)

// Features is an ordered, read-only list of GeoJSON features.
type Features []*geojson.Feature

// LoadFeatures reads a GeoJSON FeatureCollection from path.
func LoadFeatures(path string) (Features, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fs, err := ReadFeatures(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}

// ReadFeatures decodes a GeoJSON FeatureCollection.
func ReadFeatures(r io.Reader) (Features, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	return Features(fc.Features), nil
}

// Predicate tests a property value. Missing properties are passed as nil.
type Predicate func(v any) bool

func Equals(want any) Predicate {
	return func(v any) bool { return sameValue(v, want) }
}

func NotNull() Predicate {
	return func(v any) bool { return v != nil }
}

func OneOf(values ...any) Predicate {
	return func(v any) bool {
		for _, w := range values {
			if sameValue(v, w) {
				return true
			}
		}
		return false
	}
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aok := number(a)
	fb, bok := number(b)
	if aok && bok {
		return fa == fb
	}
	switch a := a.(type) {
	case string:
		s, ok := b.(string)
		return ok && a == s
	case bool:
		t, ok := b.(bool)
		return ok && a == t
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Select returns, in input order, the features whose property key satisfies
// pred. An empty result is not an error.
func Select(fs Features, key string, pred Predicate) Features {
	var out Features
	for _, f := range fs {
		if f == nil {
			continue
		}
		if pred(f.Properties[key]) {
			out = append(out, f)
		}
	}
	return out
}

// Names lists the distinct non-null values of key, sorted.
func Names(fs Features, key string) []string {
	seen := map[string]bool{}
	var names []string
	for _, f := range Select(fs, key, NotNull()) {
		var s string
		switch v := f.Properties[key].(type) {
		case string:
			s = v
		default:
			s = fmt.Sprint(v)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}
