package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"indexdeck/internal/adapters/cacheservice"
	"indexdeck/internal/application"
	"indexdeck/internal/application/commands"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Server search cache maintenance",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the server search cache",
	Long: `Ask the server to delete its cached search results and report how
many entries were removed.

Examples:
  indexdeck-cli cache clear
  INDEXDECK_SERVER=http://media:9696 indexdeck-cli cache clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := cacheservice.NewClient(cfg.Server.URL, cfg.Server.Token, nil, cfg.Server.Timeout(), logger)
		session := application.NewCacheClearSession(client, logger)
		defer session.Close()

		result, err := commands.NewClearCacheCommand(session).Execute(cmd.Context())
		if errors.Is(err, application.ErrCacheClearFailed) {
			return errors.New(application.CacheClearFailedMessage)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
