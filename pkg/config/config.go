// Package config loads the shell configuration from an optional .env file,
// an optional YAML file and DASHBOARD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DASHBOARD_"

var validate = validator.New()

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Realtime      RealtimeConfig      `yaml:"realtime"`
	Export        ExportConfig        `yaml:"export"`
	Theme         ThemeConfig         `yaml:"theme"`
	Sections      SectionsConfig      `yaml:"sections"`
	Logging       LoggingConfig       `yaml:"logging"`
	Charts        ChartsConfig        `yaml:"charts"`
}

type ServerConfig struct {
	Address  string `yaml:"address" validate:"required"`
	BasePath string `yaml:"base_path" validate:"required,startswith=/"`
}

type NotificationsConfig struct {
	// Timeout of zero uses the channel default; negative disables expiry.
	Timeout time.Duration `yaml:"timeout"`
	// Capacity of zero uses the channel default; negative is unbounded.
	Capacity int `yaml:"capacity"`
}

type RealtimeConfig struct {
	Interval      time.Duration `yaml:"interval" validate:"gt=0"`
	DriftInterval time.Duration `yaml:"drift_interval" validate:"gt=0"`
}

type ExportConfig struct {
	DownloadTTL time.Duration `yaml:"download_ttl" validate:"gt=0"`
	// Dir receives exports written by the CLI.
	Dir string `yaml:"dir" validate:"required"`
}

type ThemeConfig struct {
	StorePath string `yaml:"store_path"`
	DarkMode  bool   `yaml:"dark_mode"`
}

type SectionsConfig struct {
	// ManifestPath overlays the embedded section manifest.
	ManifestPath string `yaml:"manifest_path"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

type ChartsConfig struct {
	AssetsHost string `yaml:"assets_host"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080", BasePath: "/admin"},
		Notifications: NotificationsConfig{
			Timeout:  5 * time.Second,
			Capacity: 50,
		},
		Realtime: RealtimeConfig{
			Interval:      2 * time.Second,
			DriftInterval: 5 * time.Second,
		},
		Export: ExportConfig{
			DownloadTTL: 10 * time.Minute,
			Dir:         "exports",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Options selects the sources Load reads.
type Options struct {
	// EnvFile is loaded with godotenv when it exists. Existing environment
	// variables win over the file.
	EnvFile string
	// Path is an optional YAML file.
	Path string
	// Lookup reads environment variables; nil uses os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Load builds the configuration from defaults, then the YAML file, then
// environment overrides, and validates the result.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", opts.EnvFile, err)
		}
	}

	cfg := Default()
	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", opts.Path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", opts.Path, err)
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := applyEnvOverrides(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// applyEnvOverrides reads DASHBOARD_* variables.
func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("ADDR", &cfg.Server.Address)
	str("BASE_PATH", &cfg.Server.BasePath)
	dur("NOTIFICATION_TIMEOUT", &cfg.Notifications.Timeout)
	integer("NOTIFICATION_CAPACITY", &cfg.Notifications.Capacity)
	dur("REALTIME_INTERVAL", &cfg.Realtime.Interval)
	dur("DRIFT_INTERVAL", &cfg.Realtime.DriftInterval)
	dur("DOWNLOAD_TTL", &cfg.Export.DownloadTTL)
	str("EXPORT_DIR", &cfg.Export.Dir)
	str("THEME_STORE", &cfg.Theme.StorePath)
	boolean("DARK_MODE", &cfg.Theme.DarkMode)
	str("SECTIONS_MANIFEST", &cfg.Sections.ManifestPath)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FILE", &cfg.Logging.File)
	boolean("LOG_JSON", &cfg.Logging.JSON)
	str("ECHARTS_ASSETS_HOST", &cfg.Charts.AssetsHost)

	return errors.Join(errs...)
}
