package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	GeneratorTerrain = "terrain"
	GeneratorFlat    = "flat"
)

// Config holds the volumectl configuration.
type Config struct {
	Version     string `yaml:"version"`      // game data version, e.g. "pc-1.8"
	Generator   string `yaml:"generator"`    // "terrain" or "flat"
	Seed        int64  `yaml:"seed"`
	Compress    bool   `yaml:"compress"`     // zstd-frame dumps
	MetricsFile string `yaml:"metrics_file"` // Prometheus textfile, empty = off
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:   "pc-1.8",
		Generator: GeneratorTerrain,
		Compress:  true,
		LogLevel:  "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Generator {
	case GeneratorTerrain, GeneratorFlat:
	default:
		return fmt.Errorf("unknown generator %q", c.Generator)
	}
	if c.Version == "" {
		return fmt.Errorf("version is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["version"] {
		cfg.Version = fromFile.Version
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["compress"] {
		cfg.Compress = fromFile.Compress
	}
	if !explicitFlags["metrics-file"] {
		cfg.MetricsFile = fromFile.MetricsFile
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}
