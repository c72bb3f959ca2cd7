// Package config loads zotime settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ngrash/zotime/tz"
)

// EnvDefaultZone overrides Config.DefaultZone when set and non-empty.
const EnvDefaultZone = "ZOTIME_DEFAULT_ZONE"

// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config holds resolver settings.
type Config struct {
	// DefaultZone is the ambient zone. Empty means $TZ or the local zone.
	DefaultZone string `yaml:"default_zone" toml:"default_zone"`
	// ZoneinfoDir is a directory of TZif files used instead of the
	// platform database.
	ZoneinfoDir string `yaml:"zoneinfo_dir" toml:"zoneinfo_dir"`
	// Abbreviations maps extra abbreviations to offsets like "+05:30".
	Abbreviations map[string]string `yaml:"abbreviations" toml:"abbreviations"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// Default returns the configuration used without a config file.
func Default() *Config {
	c := &Config{LogLevel: "info"}
	c.applyEnv()
	return c
}

// Load reads the file at path. The format follows the extension: .yaml or
// .yml for YAML, .toml for TOML.
func Load(path string) (*Config, error) {
	var unmarshal func([]byte, any) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".toml":
		unmarshal = toml.Unmarshal
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := &Config{LogLevel: "info"}
	if err := unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDefaultZone); v != "" {
		c.DefaultZone = v
	}
}

// Validate checks abbreviation offsets and the log level.
func (c *Config) Validate() error {
	var errs []error
	for _, name := range c.abbreviationNames() {
		if _, ok := tz.ParseOffset(c.Abbreviations[name]); !ok {
			errs = append(errs, fmt.Errorf("abbreviation %s: invalid offset %q", name, c.Abbreviations[name]))
		}
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level returns LogLevel as a slog.Level. Empty means info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Resolver returns a resolver configured by c that logs to logger.
func (c *Config) Resolver(logger *slog.Logger) (*tz.Resolver, error) {
	opts := []tz.Option{tz.WithLogger(logger)}
	if c.DefaultZone != "" {
		opts = append(opts, tz.WithDefaultZone(c.DefaultZone))
	}
	if c.ZoneinfoDir != "" {
		fi, err := os.Stat(c.ZoneinfoDir)
		if err != nil {
			return nil, fmt.Errorf("zoneinfo_dir: %w", err)
		}
		if !fi.IsDir() {
			return nil, fmt.Errorf("zoneinfo_dir: %s is not a directory", c.ZoneinfoDir)
		}
		opts = append(opts, tz.WithProvider(tz.NewDirProvider(c.ZoneinfoDir)))
	}
	for _, name := range c.abbreviationNames() {
		seconds, ok := tz.ParseOffset(c.Abbreviations[name])
		if !ok {
			return nil, fmt.Errorf("abbreviation %s: invalid offset %q", name, c.Abbreviations[name])
		}
		opts = append(opts, tz.WithAbbreviation(name, seconds, false))
	}
	logger.Debug("resolver configured", "default_zone", c.DefaultZone, "zoneinfo_dir", c.ZoneinfoDir, "abbreviations", len(c.Abbreviations))
	return tz.NewResolver(opts...), nil
}

func (c *Config) abbreviationNames() []string {
	names := make([]string, 0, len(c.Abbreviations))
	for name := range c.Abbreviations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
