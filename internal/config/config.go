// Package config loads fyfire settings from a TOML file, an optional .env
// file and FYFIRE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/theirongolddev/fyfire/internal/fire"
)

// Config holds all fyfire configuration.
type Config struct {
	General    GeneralConfig    `toml:"general" envPrefix:"FYFIRE_"`
	Policy     PolicyConfig     `toml:"policy" envPrefix:"FYFIRE_"`
	Appearance AppearanceConfig `toml:"appearance" envPrefix:"FYFIRE_"`
	Server     ServerConfig     `toml:"server" envPrefix:"FYFIRE_SERVER_"`
	Sweep      SweepConfig      `toml:"sweep" envPrefix:"FYFIRE_SWEEP_"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath   string `toml:"db_path,omitempty" env:"DB_PATH"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
}

// PolicyConfig holds rule constants passed to the engine.
type PolicyConfig struct {
	PensionAccessAge int `toml:"pension_access_age" env:"PENSION_ACCESS_AGE"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"THEME"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr              string  `toml:"addr" env:"ADDR"`
	RequestsPerSecond float64 `toml:"requests_per_second" env:"RPS"`
	Burst             int     `toml:"burst" env:"BURST"`
	CacheTTLSec       int     `toml:"cache_ttl_sec" env:"CACHE_TTL_SEC"`
}

// SweepConfig holds what-if sweep settings.
type SweepConfig struct {
	Workers int `toml:"workers" env:"WORKERS"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Policy: PolicyConfig{
			PensionAccessAge: fire.DefaultPensionAccessAge,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8787",
			RequestsPerSecond: 20,
			Burst:             40,
			CacheTTLSec:       300,
		},
		Sweep: SweepConfig{
			Workers: 4,
		},
	}
}

// EnginePolicy converts the policy section into the engine's Policy.
func (c Config) EnginePolicy() fire.Policy {
	return fire.Policy{PensionAccessAge: c.Policy.PensionAccessAge}
}

// DatabasePath returns the inputs database path, defaulting into ConfigDir.
func (c Config) DatabasePath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(ConfigDir(), "fyfire.db")
}

// Validate rejects settings the engine or server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Policy.PensionAccessAge <= 0 {
		errs = append(errs, fmt.Errorf("policy.pension_access_age must be positive, got %d", c.Policy.PensionAccessAge))
	}
	if c.Server.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("server.requests_per_second must be positive, got %g", c.Server.RequestsPerSecond))
	}
	if c.Server.Burst <= 0 {
		errs = append(errs, fmt.Errorf("server.burst must be positive, got %d", c.Server.Burst))
	}
	if c.Sweep.Workers <= 0 {
		errs = append(errs, fmt.Errorf("sweep.workers must be positive, got %d", c.Sweep.Workers))
	}
	return errors.Join(errs...)
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fyfire")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fyfire")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the default config file and environment.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path, returning defaults if it doesn't
// exist, then applies .env and FYFIRE_* overrides.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists at the default path.
func Exists() bool {
	return ExistsAt(ConfigPath())
}

// ExistsAt returns true if a config file exists at path.
func ExistsAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
