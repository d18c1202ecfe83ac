package main

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "prensa-checklist"

type appConfig struct {
	Database  string              `yaml:"database"`
	Stations  string              `yaml:"stations"`
	Cables    string              `yaml:"cables"`
	Telemetry string              `yaml:"telemetry,omitempty"`
	LogFile   string              `yaml:"log_file,omitempty"`
	LogLevel  string              `yaml:"log_level,omitempty"`
	Theme     string              `yaml:"theme,omitempty"`
	Keys      map[string][]string `yaml:"keys,omitempty"`
}

func defaultAppConfig() *appConfig {
	dir := resolveConfigDir()
	return &appConfig{
		Database:  "banco_qrcode.db",
		Stations:  "prensas_config.json",
		Cables:    "cabos_config.json",
		Telemetry: filepath.Join(dir, "telemetry.jsonl"),
		LogFile:   filepath.Join(dir, appName+".log"),
		LogLevel:  "info",
		Theme:     string(markdownThemeAuto),
		Keys:      defaultKeyConfig(),
	}
}

// loadAppConfig reads the config at path, or the default location when path
// is empty. Anything missing or unreadable falls back to defaults.
func loadAppConfig(path string) (*appConfig, string) {
	if strings.TrimSpace(path) == "" {
		configDir := resolveConfigDir()
		_ = os.MkdirAll(configDir, 0o755)
		path = filepath.Join(configDir, "config.yaml")
	}
	cfg := defaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, path
	}
	var loaded appConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, path
	}
	cfg.merge(&loaded)
	return cfg, path
}

func (c *appConfig) merge(other *appConfig) {
	if other == nil {
		return
	}
	setIfPresent(&c.Database, other.Database)
	setIfPresent(&c.Stations, other.Stations)
	setIfPresent(&c.Cables, other.Cables)
	setIfPresent(&c.Telemetry, other.Telemetry)
	setIfPresent(&c.LogFile, other.LogFile)
	setIfPresent(&c.LogLevel, other.LogLevel)
	setIfPresent(&c.Theme, other.Theme)
	for action, keys := range other.Keys {
		if len(keys) > 0 {
			c.Keys[action] = keys
		}
	}
}

func setIfPresent(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func saveAppConfig(cfg *appConfig, path string) error {
	if cfg == nil {
		cfg = defaultAppConfig()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func resolveConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appName)
}
