// Package config loads the scraper's runtime configuration from a YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carnivalplanner/carnival-scraper/internal/store"
)

// Config is the full runtime configuration. Only the document-store
// settings are required; everything else in the pipeline is fixed by
// design (rate limits in particular are not tunables).
type Config struct {
	Mongo store.MongoConfig `yaml:"mongo"`
}

// Load reads the YAML config at path and applies environment overrides.
// A missing file is tolerated when the environment supplies the store
// settings; missing store credentials are a fatal configuration error,
// reported before any fetching begins.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to environment-only configuration.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if cfg.Mongo.Host == "" {
		return nil, fmt.Errorf("no document store configured: set mongo.host in %s or MONGO_HOST", path)
	}
	if cfg.Mongo.DBName == "" {
		cfg.Mongo.DBName = "carnival-planner"
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Mongo.Host = getenv("MONGO_HOST", cfg.Mongo.Host)
	cfg.Mongo.DBName = getenv("MONGO_DBNAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = getenv("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = getenv("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.AuthSource = getenv("MONGO_AUTH_SOURCE", cfg.Mongo.AuthSource)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
