// Package config provides gno configuration with a defined load order:
// CLI flags > environment variables > config file > defaults.
//
// The config file defaults to gno.toml in the working directory and is
// optional unless a path was requested explicitly.
//
// Environment variables (override the config file when set):
//   - GNO_PATH: repository path (any directory inside the work tree)
//   - GNO_FORMAT: report format, one of table, json, svg
//   - GNO_LOG_LEVEL: debug, info, warn, error
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/anton-dovnar/gno/logging"
)

// DefaultFile is the config file read when none is given.
const DefaultFile = "gno.toml"

// Report formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatSVG   = "svg"
)

const (
	_defaultPath   = "."
	_defaultFormat = FormatTable
)

// Config holds all gno configuration.
type Config struct {
	Path     string `toml:"path"`
	Format   string `toml:"format"`
	LogLevel string `toml:"log_level"`
}

// Overrides holds values set on the command line. A nil field leaves the
// lower layers untouched.
type Overrides struct {
	Path     *string
	Format   *string
	LogLevel *string
}

// LoadOptions configures Load. All fields are optional.
type LoadOptions struct {
	// File is the config file path; empty means DefaultFile.
	File string
	// Required makes a missing File an error. Set when the user named it.
	Required bool
	// Env is the environment key=value slice; if nil, os.Environ() is used.
	Env []string
	// Overrides are applied last (highest precedence).
	Overrides *Overrides
}

// DefaultConfig returns the default configuration (no I/O).
func DefaultConfig() Config {
	return Config{
		Path:     _defaultPath,
		Format:   _defaultFormat,
		LogLevel: logging.DefaultLevel,
	}
}

// Load loads configuration with precedence: defaults < file < env < overrides.
// Invalid TOML or invalid values return an error.
func Load(opts LoadOptions) (*Config, error) {
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.File == "" {
		opts.File = DefaultFile
	}
	cfg := DefaultConfig()

	if err := mergeFile(&cfg, opts.File, opts.Required); err != nil {
		return nil, err
	}
	applyEnv(&cfg, opts.Env)
	applyOverrides(&cfg, opts.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFile reads path and merges into cfg. Keys absent from the file keep
// their previous value.
func mergeFile(cfg *Config, path string, required bool) error {
	var file struct {
		Path     *string `toml:"path"`
		Format   *string `toml:"format"`
		LogLevel *string `toml:"log_level"`
	}
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if file.Path != nil {
		cfg.Path = *file.Path
	}
	if file.Format != nil {
		cfg.Format = *file.Format
	}
	if file.LogLevel != nil {
		cfg.LogLevel = *file.LogLevel
	}
	return nil
}

func applyEnv(cfg *Config, env []string) {
	m := envMap(env)
	if v, ok := m["GNO_PATH"]; ok && v != "" {
		cfg.Path = v
	}
	if v, ok := m["GNO_FORMAT"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := m["GNO_LOG_LEVEL"]; ok && v != "" {
		cfg.LogLevel = v
	}
}

func applyOverrides(cfg *Config, o *Overrides) {
	if o == nil {
		return
	}
	if o.Path != nil {
		cfg.Path = *o.Path
	}
	if o.Format != nil {
		cfg.Format = *o.Format
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
}

// Validate normalizes Format and LogLevel and rejects unknown values.
func (c *Config) Validate() error {
	if c.Path == "" {
		return errors.New("repository path must not be empty")
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case FormatTable, FormatJSON, FormatSVG:
	default:
		return fmt.Errorf("invalid format %q; use table, json, or svg", c.Format)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level %q; use debug, info, warn, or error", c.LogLevel)
	}
	return nil
}

func envMap(env []string) map[string]string {
	m := make(map[string]string, len(env))
	for _, e := range env {
		k, v, ok := strings.Cut(e, "=")
		if ok {
			m[k] = v
		}
	}
	return m
}
