/*
Package config loads server configuration and the statutory rate table.

PURPOSE:
  Keeps deployment-time data out of the engine. Two concerns live here:
  - Config: server settings (port, database path, rates file), layered
    defaults -> optional YAML file -> STATUTORY_* environment variables.
  - Rate loading (rates.go): a YAML rate file merged over the compiled-in
    DefaultRateTable, so a new tax year is a data update, not a code change.

SEE ALSO:
  - rates.go: YAML rate file parsing and validation
  - cmd/server/main.go: Startup wiring
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment overrides, e.g. STATUTORY_PORT.
const envPrefix = "STATUTORY_"

// Config holds server settings.
type Config struct {
	Port      int    `koanf:"port"`
	DBPath    string `koanf:"db_path"`
	RatesFile string `koanf:"rates_file"` // optional YAML rate table
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:   8080,
		DBPath: "statutory.db",
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. Defaults()
//  2. file (YAML) at 'path', or $STATUTORY_CONFIG if path is empty
//  3. env (prefix STATUTORY_)
func Load(path string) (Config, error) {
	cfg := Defaults()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// STATUTORY_PORT -> port, STATUTORY_DB_PATH -> db_path, ...
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("port must be between 1 and 65535")
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("db_path must not be empty")
	}
	return cfg, nil
}
