package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"indexdeck/internal/application/commands"
)

var mirrorsCmd = &cobra.Command{
	Use:   "mirrors <indexer-id>",
	Short: "Show the mirror links of an indexer",
	Long: `Show an indexer's mirror links in selection order.

Primary links come first, then legacy links. Index 0 is the default
mirror and is marked active.

Examples:
  indexdeck-cli mirrors 3f2c9a1e-...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := commands.NewListMirrorsCommand(GetCatalog(), store, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(listing.Options) == 0 {
			fmt.Fprintln(out, "No mirrors.")
			return nil
		}

		rows := make([][]string, 0, len(listing.Options))
		for i, opt := range listing.Options {
			active := ""
			if opt.GlobalIndex == listing.Active.GlobalIndex {
				active = "*"
			}
			rows = append(rows, []string{
				active,
				strconv.Itoa(opt.GlobalIndex),
				listing.Labels[i],
				opt.Source.String(),
				opt.URL,
			})
		}
		writeTable(out,
			[]string{"", "Index", "Label", "Source", "URL"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mirrorsCmd)
}
