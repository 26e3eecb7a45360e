// Package config loads peak's YAML configuration file and environment
// overrides. These settings describe the process (paths, cadences); user
// preferences such as durations live in the persisted app state instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName        = "peak"
	configFileName = "config.yaml"
)

type Config struct {
	DBPath           string
	LogPath          string
	TickInterval     time.Duration
	PresenceInterval time.Duration
	PresenceTTL      time.Duration
	AutosaveDelay    time.Duration
	Bell             bool
	NotifyCommand    string
}

type yamlConfig struct {
	DBPath           string `yaml:"db_path"`
	LogPath          string `yaml:"log_path"`
	TickInterval     string `yaml:"tick_interval"`
	PresenceInterval string `yaml:"presence_interval"`
	PresenceTTL      string `yaml:"presence_ttl"`
	AutosaveDelay    string `yaml:"autosave_delay"`
	Bell             *bool  `yaml:"bell"`
	NotifyCommand    string `yaml:"notify_command"`
}

// Default returns the configuration used when no file exists. Paths are
// placed under the user config directory.
func Default() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:           filepath.Join(dir, "peak.db"),
		LogPath:          filepath.Join(dir, "peak.log"),
		TickInterval:     time.Second,
		PresenceInterval: 5 * time.Second,
		PresenceTTL:      15 * time.Second,
		AutosaveDelay:    250 * time.Millisecond,
		Bell:             true,
	}, nil
}

// Dir returns ~/.config/peak (or the platform equivalent).
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cfg, appName), nil
}

// Path returns the default location of the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the file at path over the defaults, then applies environment
// overrides. A missing file is not an error. Invalid values are ignored field
// by field.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config file: %w", err)
	default:
		var file yamlConfig
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return cfg, fmt.Errorf("parse config yaml: %w", err)
		}
		applyYAML(&cfg, file)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	bell := cfg.Bell
	file := yamlConfig{
		DBPath:           cfg.DBPath,
		LogPath:          cfg.LogPath,
		TickInterval:     cfg.TickInterval.String(),
		PresenceInterval: cfg.PresenceInterval.String(),
		PresenceTTL:      cfg.PresenceTTL.String(),
		AutosaveDelay:    cfg.AutosaveDelay.String(),
		Bell:             &bell,
		NotifyCommand:    cfg.NotifyCommand,
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func applyYAML(cfg *Config, file yamlConfig) {
	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.LogPath != "" {
		cfg.LogPath = file.LogPath
	}
	setDuration(&cfg.TickInterval, file.TickInterval)
	setDuration(&cfg.PresenceInterval, file.PresenceInterval)
	setDuration(&cfg.PresenceTTL, file.PresenceTTL)
	setDuration(&cfg.AutosaveDelay, file.AutosaveDelay)
	if file.Bell != nil {
		cfg.Bell = *file.Bell
	}
	if file.NotifyCommand != "" {
		cfg.NotifyCommand = file.NotifyCommand
	}
}

// setDuration overwrites dst when raw parses to a positive duration.
func setDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		*dst = d
	}
}
