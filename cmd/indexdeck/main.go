package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"indexdeck/internal/adapters/browser"
	"indexdeck/internal/adapters/cacheservice"
	"indexdeck/internal/adapters/editor"
	"indexdeck/internal/adapters/sqlite"
	"indexdeck/internal/adapters/tui"
	"indexdeck/internal/config"
	"indexdeck/internal/domain"
	"indexdeck/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}

	// stdout belongs to the screen
	logger, closeLog, err := openLog(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	catalog := sqlite.NewCatalog()
	if err := catalog.Open(cfg.Catalog.Path); err != nil {
		return err
	}
	defer catalog.Close()

	configPath, err := config.ExpandPath(*configFlag)
	if err != nil {
		return err
	}

	app := tui.NewApp(tui.Deps{
		Catalog:    catalog,
		Store:      domain.NewSelectionStore(),
		Cache:      cacheservice.NewClient(cfg.Server.URL, cfg.Server.Token, nil, cfg.Server.Timeout(), logger),
		Editor:     editor.NewOpener(),
		Browser:    browser.NewOpener(),
		ConfigPath: configPath,
		ServerURL:  cfg.Server.URL,
		Logger:     logger,
	})
	defer app.Close()

	logger.Info("starting", "server", cfg.Server.URL, "catalog", cfg.Catalog.Path)

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func openLog(cfg config.Logging) (*slog.Logger, func(), error) {
	if cfg.File == "" {
		return logging.Discard(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := logging.New(f, cfg.Level, cfg.Format)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
