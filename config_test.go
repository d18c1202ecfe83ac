package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, gotPath := loadAppConfig(path)

	assert.Equal(t, path, gotPath)
	assert.Equal(t, "banco_qrcode.db", cfg.Database)
	assert.Equal(t, "prensas_config.json", cfg.Stations)
	assert.Equal(t, "cabos_config.json", cfg.Cables)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, defaultKeyConfig(), cfg.Keys)
}

func TestLoadAppConfigMergesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `database: /srv/linha/banco_qrcode.db
stations: prensas.yaml
log_level: debug
keys:
  down: [j]
  up: []
`)

	cfg, _ := loadAppConfig(path)

	assert.Equal(t, "/srv/linha/banco_qrcode.db", cfg.Database)
	assert.Equal(t, "prensas.yaml", cfg.Stations)
	assert.Equal(t, "cabos_config.json", cfg.Cables)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"j"}, cfg.Keys[actionDown])
	assert.Equal(t, defaultKeyConfig()[actionUp], cfg.Keys[actionUp])
}

func TestLoadAppConfigIgnoresBrokenFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "database: [unterminated\n")

	cfg, _ := loadAppConfig(path)

	assert.Equal(t, defaultAppConfig(), cfg)
}

func TestSaveAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultAppConfig()
	cfg.Database = "bench.db"
	cfg.Keys[actionRight] = []string{"l"}

	require.NoError(t, saveAppConfig(cfg, path))
	loaded, _ := loadAppConfig(path)

	assert.Equal(t, cfg, loaded)
}

func TestMergeSkipsBlankOverrides(t *testing.T) {
	cfg := defaultAppConfig()
	cfg.merge(&appConfig{Database: "  ", Theme: "dark"})

	assert.Equal(t, "banco_qrcode.db", cfg.Database)
	assert.Equal(t, "dark", cfg.Theme)
}
