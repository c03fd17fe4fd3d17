package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"indexdeck/internal/adapters/sqlite"
	"indexdeck/internal/config"
	"indexdeck/internal/domain"
	"indexdeck/internal/logging"
	"indexdeck/internal/ports"
)

var (
	configPath string
	verbose    bool

	cfg     *config.Config
	logger  *slog.Logger
	catalog ports.IndexerCatalog
	store   = domain.NewSelectionStore()
)

var rootCmd = &cobra.Command{
	Use:   "indexdeck-cli",
	Short: "CLI for managing media indexers",
	Long: `indexdeck-cli manages the indexers known to a media-indexer server.

It lists indexers and their mirror links, registers and removes indexers
in the local catalog, and clears the server's search cache.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if catalog != nil {
			return catalog.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.Path(), "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
}

// setup loads the config and opens the catalog. Commands under "config"
// only need the path and skip it.
func setup(cmd *cobra.Command) error {
	if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err = logging.New(os.Stderr, level, cfg.Logging.Format)
	if err != nil {
		return err
	}

	c := sqlite.NewCatalog()
	if err := c.Open(cfg.Catalog.Path); err != nil {
		return err
	}
	catalog = c
	logger.Debug("catalog opened", "path", cfg.Catalog.Path)
	return nil
}

// GetCatalog returns the opened indexer catalog
func GetCatalog() ports.IndexerCatalog {
	return catalog
}
