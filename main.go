package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to the user config dir)")
	dbPath := flag.String("db", "", "SQLite database with the qrcode table")
	stationsPath := flag.String("stations", "", "press station table (.json or .yaml)")
	cablesPath := flag.String("cables", "", "cable description table (.json or .yaml)")
	theme := flag.String("theme", "", "summary rendering theme: auto, light, or dark")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, or error")
	writeConfig := flag.Bool("write-config", false, "write the effective config file and exit")
	flag.Parse()

	cfg, cfgPath := loadAppConfig(*configPath)
	cfg.merge(&appConfig{
		Database: *dbPath,
		Stations: *stationsPath,
		Cables:   *cablesPath,
		Theme:    *theme,
		LogLevel: *logLevel,
	})

	if *writeConfig {
		if err := saveAppConfig(cfg, cfgPath); err != nil {
			exitWithError(fmt.Errorf("write config: %w", err))
		}
		fmt.Println(cfgPath)
		return
	}

	if err := run(cfg); err != nil {
		exitWithError(err)
	}
}

func run(cfg *appConfig) error {
	logFile, logErr := openLogFile(cfg.LogFile)
	defer logFile.Close()
	logger := newLogger(logFile, cfg.LogLevel)
	if logErr != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", logErr)
	}

	setMarkdownTheme(markdownThemeFromString(cfg.Theme))

	catalog, err := loadStationCatalog(cfg.Stations, cfg.Cables)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("configuration incomplete", "err", err)
		} else {
			logger.Warn("configuration incomplete", "err", err)
		}
	}
	logger.Info("configuration loaded",
		"stations", len(catalog.Stations),
		"cables", len(catalog.Cables),
	)

	deps := modelDeps{
		catalog:   catalog,
		telemetry: newTelemetryLogger(cfg.Telemetry, resolveOperator()),
		logger:    logger,
		keys:      cfg.Keys,
	}
	store, err := openQRCodeStore(cfg.Database)
	if err != nil {
		logger.Error("open qrcode database", "err", err)
		deps.lookup = unavailableLookup{err: err}
	} else {
		defer store.Close()
		deps.lookup = store
	}

	if _, err := tea.NewProgram(newModel(deps), tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
