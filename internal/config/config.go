// Package config loads the server configuration.
//
// Values are layered, each layer overriding the previous one:
// built-in defaults, the YAML configuration file and then the environment.
// Environment variables are prefixed by `PANTRY_` and nested keys are separated by `__`
// (e.g. PANTRY_DATABASE__PATH=/var/lib/pantry).
package config

import (
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/pantry/internal/logger"
	"github.com/mdouchement/pantry/pkg/stormcodec"
	"github.com/pkg/errors"
)

const (
	// EnvPrefix is the prefix of the environment variables read by Load.
	EnvPrefix = "PANTRY_"
	// DatabaseName is the name of the database file.
	DatabaseName = "pantry.db"
)

// A Config holds the server configuration.
type Config struct {
	Address        string          `koanf:"address"`
	NoRegistration bool            `koanf:"no_registration"`
	SecretKey      string          `koanf:"secret_key"`
	Database       Database        `koanf:"database"`
	Log            logger.Settings `koanf:"log"`
}

// A Database holds the storage configuration.
type Database struct {
	Path  string `koanf:"path"`
	Codec string `koanf:"codec"`
}

// Filename returns the database file path.
func (d Database) Filename() string {
	if d.Path == "" {
		return DatabaseName
	}
	return filepath.Join(d.Path, DatabaseName)
}

func defaults() map[string]any {
	return map[string]any{
		"address":         "localhost:5000",
		"no_registration": false,
		"database.path":   "",
		"database.codec":  stormcodec.Default,
		"log.level":       "info",
		"log.format":      "text",
		"log.file":        "",
		"log.max_size":    20,
		"log.max_backups": 2,
		"log.max_age":     10,
	}
}

// Load reads the configuration from the given file, if any, and the environment.
func Load(filename string) (Config, error) {
	var cfg Config

	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return cfg, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return cfg, errors.Wrapf(err, "could not load %s", filename)
		}
	}

	err := konf.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil)
	if err != nil {
		return cfg, errors.Wrap(err, "could not load environment")
	}

	if err = konf.Unmarshal("", &cfg); err != nil {
		return cfg, errors.Wrap(err, "could not decode configuration")
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration consistency.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret_key not found")
	}

	if _, err := stormcodec.Lookup(c.Database.Codec); err != nil {
		return errors.Wrap(err, "database.codec")
	}

	return c.Log.Validate()
}
