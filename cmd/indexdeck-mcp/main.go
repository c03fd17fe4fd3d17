package main

import (
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"indexdeck/internal/adapters/cacheservice"
	mcpadapter "indexdeck/internal/adapters/mcp"
	"indexdeck/internal/adapters/sqlite"
	"indexdeck/internal/application"
	"indexdeck/internal/config"
	"indexdeck/internal/domain"
	"indexdeck/internal/logging"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("indexdeck-mcp: %v", err)
	}

	// stdout carries the protocol
	logger, err := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("indexdeck-mcp: %v", err)
	}

	catalog := sqlite.NewCatalog()
	if err := catalog.Open(cfg.Catalog.Path); err != nil {
		log.Fatalf("indexdeck-mcp: %v", err)
	}
	defer catalog.Close()

	client := cacheservice.NewClient(cfg.Server.URL, cfg.Server.Token, nil, cfg.Server.Timeout(), logger)
	session := application.NewCacheClearSession(client, logger)
	defer session.Close()

	mcpServer := server.NewMCPServer(
		"indexdeck-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpadapter.RegisterTools(mcpServer, mcpadapter.Deps{
		Catalog: catalog,
		Store:   domain.NewSelectionStore(),
		Session: session,
	})

	logger.Info("serving stdio", "server", cfg.Server.URL)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("serve failed", "error", err)
		os.Exit(1)
	}
}
