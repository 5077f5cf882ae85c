package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
)

const regionsJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Warszawa", "admin_level": 6},
     "geometry": {"type": "Polygon", "coordinates": [[[21,52],[21.1,52],[21.1,52.1],[21,52.1],[21,52]]]}},
    {"type": "Feature", "properties": {"name": "Piaseczno", "admin_level": 7},
     "geometry": {"type": "Polygon", "coordinates": [[[21,51.9],[21.1,51.9],[21.1,52],[21,52],[21,51.9]]]}},
    {"type": "Feature", "properties": {"name": null},
     "geometry": {"type": "LineString", "coordinates": [[21,52],[21.1,52.1]]}},
    {"type": "Feature", "properties": {"name": "Warszawa", "admin_level": 8},
     "geometry": {"type": "Point", "coordinates": [21.05,52.05]}}
  ]
}`

func TestLoadFeatures(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "regions.geojson")
	is.NoErr(os.WriteFile(path, []byte(regionsJSON), 0o644))

	fs, err := LoadFeatures(path)
	is.NoErr(err)
	is.Equal(len(fs), 4)

	_, err = LoadFeatures(filepath.Join(t.TempDir(), "missing.geojson"))
	is.True(err != nil)
}

func TestReadFeaturesRejectsGarbage(t *testing.T) {
	is := is.New(t)
	_, err := ReadFeatures(strings.NewReader("{not json"))
	is.True(err != nil)
}

func TestSelect(t *testing.T) {
	is := is.New(t)
	fs, err := ReadFeatures(strings.NewReader(regionsJSON))
	is.NoErr(err)

	is.Equal(len(Select(fs, "name", Equals("Warszawa"))), 2)
	is.Equal(len(Select(fs, "name", Equals("DoesNotExist"))), 0)
	is.Equal(len(Select(fs, "name", NotNull())), 3)
	is.Equal(len(Select(fs, "missing", NotNull())), 0)
	is.Equal(len(Select(fs, "admin_level", Equals(7))), 1)
	is.Equal(len(Select(fs, "admin_level", OneOf(6, 8))), 2)
}

func TestSelectKeepsInputOrder(t *testing.T) {
	is := is.New(t)
	fs, _ := ReadFeatures(strings.NewReader(regionsJSON))

	got := Select(fs, "name", NotNull())
	is.Equal(got[0].Properties["name"], "Warszawa")
	is.Equal(got[1].Properties["name"], "Piaseczno")
	is.Equal(got[2], fs[3])
}

func TestNames(t *testing.T) {
	fs, _ := ReadFeatures(strings.NewReader(regionsJSON))

	got := Names(fs, "name")
	want := []string{"Piaseczno", "Warszawa"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}
