package config

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/lostfound/internal/database"
	"github.com/mdouchement/lostfound/internal/upload"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of the environment variables overriding the configuration.
// Nested keys are separated by a double underscore (e.g. LOSTFOUND_DATABASE__DRIVER).
const EnvPrefix = "LOSTFOUND_"

type (
	// A Config holds the server's configuration.
	Config struct {
		Address     string   `koanf:"address"`
		Database    Database `koanf:"database"`
		StorageKey  string   `koanf:"storage_key"`
		SeedPath    string   `koanf:"seed_path"`
		CORSOrigins []string `koanf:"cors_origins"`
		Upload      Upload   `koanf:"upload"`
		Log         Log      `koanf:"log"`
	}

	// A Database holds the storage configuration.
	Database struct {
		Driver string `koanf:"driver"`
		Path   string `koanf:"path"`
	}

	// An Upload holds the image upload configuration.
	Upload struct {
		MaxSize int64 `koanf:"max_size"`
	}

	// A Log holds the logger configuration.
	Log struct {
		Level string `koanf:"level"`
		File  string `koanf:"file"`
	}
)

var defaults = map[string]any{
	"address":         "localhost:5000",
	"database.driver": database.DriverStorm,
	"database.path":   "",
	"storage_key":     "lostItems",
	"seed_path":       "",
	"cors_origins":    []string{"*"},
	"upload.max_size": upload.DefaultMaxSize,
	"log.level":       "info",
	"log.file":        "",
}

// Load loads the configuration from the defaults, the given YAML file (if any) and the environment.
func Load(filename string) (*Config, error) {
	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrap(err, "could not load configuration file")
		}
	}

	err := konf.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load environment")
	}

	var cfg Config
	if err := konf.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "could not parse configuration")
	}

	if cfg.StorageKey == "" {
		return nil, errors.New("storage_key not found")
	}

	return &cfg, nil
}
