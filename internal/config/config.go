// Package config loads and validates the server's TOML configuration
// file, per the schema in SPEC_FULL.md / spec.md section 6.
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// LogLevel is one of the four recognised log filter thresholds.
type LogLevel string

const (
	LevelDebug   LogLevel = "Debug"
	LevelInfo    LogLevel = "Info"
	LevelWarning LogLevel = "Warning"
	LevelError   LogLevel = "Error"
)

// ModuleConfig is an opaque handler-bundle configuration table. Path is
// the only key the core itself interprets; any other keys decode into
// Extra and are passed through verbatim to that bundle's initialiser —
// loading the bundle itself is left to the host, per spec.md's Non-goal
// on dynamic handler loading.
type ModuleConfig struct {
	Path  string
	Extra map[string]interface{}
}

// UnmarshalTOML lets ModuleConfig capture "path" plus every other key
// in the table without needing a fixed schema for bundle-specific
// options.
func (m *ModuleConfig) UnmarshalTOML(raw interface{}) error {
	table, ok := raw.(map[string]interface{})
	if !ok {
		return errors.New("module config must be a table")
	}
	m.Extra = make(map[string]interface{}, len(table))
	for k, v := range table {
		if k == "path" {
			if s, ok := v.(string); ok {
				m.Path = s
			}
			continue
		}
		m.Extra[k] = v
	}
	return nil
}

// Config mirrors the `[metallircd]` table plus zero or more
// `[module.<name>]` tables.
type Config struct {
	Metallircd struct {
		ServerName string `toml:"server_name"`
		Address    string `toml:"address"`
		Port       int    `toml:"port"`
		LogLevel   string `toml:"loglevel"`
		LogFile    string `toml:"logfile"`
		Workers    int    `toml:"workers"`
	} `toml:"metallircd"`

	Module map[string]ModuleConfig `toml:"module"`
}

// Load reads and validates the TOML file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding config file %q", path)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "validating config file %q", path)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Metallircd.ServerName) == "" {
		return errors.New("metallircd.server_name is required")
	}
	if strings.TrimSpace(c.Metallircd.Address) == "" {
		return errors.New("metallircd.address is required")
	}
	if c.Metallircd.Port <= 0 || c.Metallircd.Port > 65535 {
		return errors.New("metallircd.port must be a valid TCP port")
	}
	switch LogLevel(c.Metallircd.LogLevel) {
	case "", LevelDebug, LevelInfo, LevelWarning, LevelError:
	default:
		return errors.Errorf("metallircd.loglevel %q is not one of Debug/Info/Warning/Error", c.Metallircd.LogLevel)
	}
	if c.Metallircd.Workers < 0 {
		return errors.New("metallircd.workers must not be negative")
	}
	for name, m := range c.Module {
		if strings.TrimSpace(m.Path) == "" {
			return errors.Errorf("module.%s is missing required key \"path\"", name)
		}
	}
	return nil
}

// EffectiveLogLevel returns the configured level, defaulting to Info.
func (c *Config) EffectiveLogLevel() LogLevel {
	if c.Metallircd.LogLevel == "" {
		return LevelInfo
	}
	return LogLevel(c.Metallircd.LogLevel)
}

// EffectiveWorkers returns the configured worker count, defaulting to 2
// per spec section 5's default.
func (c *Config) EffectiveWorkers() int {
	if c.Metallircd.Workers == 0 {
		return 2
	}
	return c.Metallircd.Workers
}
