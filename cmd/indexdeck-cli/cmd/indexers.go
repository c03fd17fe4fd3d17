package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"indexdeck/internal/application/commands"
)

var indexersCmd = &cobra.Command{
	Use:   "indexers",
	Short: "Manage indexers in the local catalog",
	Long: `List, add, or remove indexers.

Examples:
  indexdeck-cli indexers list
  indexdeck-cli indexers add --name Nyaa --primary https://nyaa.example --legacy https://old.nyaa.example
  indexdeck-cli indexers remove 3f2c9a1e-...`,
}

var indexersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all indexers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		indexers, err := commands.NewListIndexersCommand(GetCatalog()).Execute(context.Background())
		if err != nil {
			return err
		}
		if len(indexers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No indexers.")
			return nil
		}

		rows := make([][]string, 0, len(indexers))
		for _, ix := range indexers {
			rows = append(rows, []string{
				ix.ID,
				ix.Name,
				strconv.Itoa(len(ix.PrimaryLinks)),
				strconv.Itoa(len(ix.LegacyLinks)),
			})
		}
		writeTable(cmd.OutOrStdout(),
			[]string{"ID", "Name", "Primary", "Legacy"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
		)
		return nil
	},
}

var (
	addName    string
	addPrimary []string
	addLegacy  []string
)

var indexersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register an indexer with its mirror links",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewAddIndexerCommand(GetCatalog(), addName, addPrimary, addLegacy).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var indexersRemoveCmd = &cobra.Command{
	Use:   "remove <indexer-id>",
	Short: "Remove an indexer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRemoveIndexerCommand(GetCatalog(), store, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	indexersAddCmd.Flags().StringVarP(&addName, "name", "n", "", "display name of the indexer")
	indexersAddCmd.Flags().StringSliceVarP(&addPrimary, "primary", "p", nil, "primary mirror link (repeatable, in order)")
	indexersAddCmd.Flags().StringSliceVarP(&addLegacy, "legacy", "l", nil, "legacy mirror link (repeatable, in order)")
	_ = indexersAddCmd.MarkFlagRequired("name")

	indexersCmd.AddCommand(indexersListCmd)
	indexersCmd.AddCommand(indexersAddCmd)
	indexersCmd.AddCommand(indexersRemoveCmd)
	rootCmd.AddCommand(indexersCmd)
}
