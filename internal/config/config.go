// Package config reads run settings from the environment and optional .env
// files.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvBoundaries = "BOUNDARYMAP_BOUNDARIES"
	EnvRivers     = "BOUNDARYMAP_RIVERS"
	EnvReference  = "BOUNDARYMAP_REFERENCE"
	EnvNameKey    = "BOUNDARYMAP_NAME_KEY"
)

type Config struct {
	BoundariesPath string
	RiversPath     string
	Reference      string
	NameKey        string
}

// Load merges the given .env files (".env" when none are named) into the
// process environment and returns the resulting settings. Variables that are
// already set win over file entries. Missing files are skipped; found
// reports whether any file was read.
func Load(files ...string) (cfg Config, found bool, err error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, found, err
		}
		found = true
	}

	return Config{
		BoundariesPath: Get(EnvBoundaries, "data/boundaries.geojson"),
		RiversPath:     Get(EnvRivers, "data/rivers.geojson"),
		Reference:      Get(EnvReference, "Warszawa"),
		NameKey:        Get(EnvNameKey, "name"),
	}, found, nil
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
