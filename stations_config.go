package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// stationCatalog holds the two configuration tables the aggregation joins
// against.
type stationCatalog struct {
	Stations []stationConfig
	Cables   map[string]string
}

type stationFile struct {
	Prensas []stationEntry `json:"prensas" yaml:"prensas"`
}

type stationEntry struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"nome" yaml:"nome"`
	Terminals []string `json:"terminais,omitempty" yaml:"terminais,omitempty"`
	Terminal  string   `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

type cableFile struct {
	Cabos map[string]string `json:"cabos" yaml:"cabos"`
}

// loadStationCatalog reads both tables. A table that cannot be read is left
// empty; the returned error joins every failure so the caller can log them.
func loadStationCatalog(stationsPath, cablesPath string) (stationCatalog, error) {
	catalog := stationCatalog{Cables: map[string]string{}}
	var errs []error

	stations, err := loadStations(stationsPath)
	if err != nil {
		errs = append(errs, err)
	} else {
		catalog.Stations = stations
	}

	cables, err := loadCables(cablesPath)
	if err != nil {
		errs = append(errs, err)
	} else if cables != nil {
		catalog.Cables = cables
	}

	return catalog, errors.Join(errs...)
}

func loadStations(path string) ([]stationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read station config: %w", err)
	}
	unmarshal := unmarshalerFor(path)

	var entries []stationEntry
	var wrapped stationFile
	if err := unmarshal(data, &wrapped); err == nil {
		entries = wrapped.Prensas
	} else if listErr := unmarshal(data, &entries); listErr != nil {
		return nil, fmt.Errorf("parse station config %s: %w", path, err)
	}

	stations := make([]stationConfig, 0, len(entries))
	for _, entry := range entries {
		stations = append(stations, entry.config())
	}
	return stations, nil
}

func (e stationEntry) config() stationConfig {
	terminals := e.Terminals
	if len(terminals) == 0 && e.Terminal != "" {
		terminals = []string{e.Terminal}
	}
	return stationConfig{ID: e.ID, Name: e.Name, Terminals: terminals}
}

func loadCables(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cable config: %w", err)
	}
	var file cableFile
	if err := unmarshalerFor(path)(data, &file); err != nil {
		return nil, fmt.Errorf("parse cable config %s: %w", path, err)
	}
	return file.Cabos, nil
}

func unmarshalerFor(path string) func([]byte, any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal
	default:
		return json.Unmarshal
	}
}
