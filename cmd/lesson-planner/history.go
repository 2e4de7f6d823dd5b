// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/lesson-planner/internal/ledger"
	"github.com/pdiddy/lesson-planner/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generation attempts",
	Long: `History lists recent generation attempts from the attempt ledger, newest
first. Only outcomes are recorded; plan text is never stored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		path := viper.GetString("ledger.path")
		if path == "" {
			return fmt.Errorf("attempt ledger is disabled (ledger.path is empty)")
		}
		store, err := ledger.Open(types.LedgerConfig{Path: path})
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		if asYAML {
			return store.WriteYAML(ctx, out, limit)
		}

		attempts, err := store.Recent(ctx, limit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tOUTCOME\tSTATUS\tSUBJECT\tTOPIC\tDURATION")
		for _, a := range attempts {
			status := "-"
			if a.StatusCode != 0 {
				status = fmt.Sprint(a.StatusCode)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				a.CreatedAt.Local().Format(time.DateTime), a.Outcome, status,
				a.Request.Subject, a.Request.Topic, a.Duration.Round(time.Millisecond))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		counts, err := store.Counts(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nok: %d, validation: %d, api: %d, connection: %d\n",
			counts[types.OutcomeOK], counts[types.OutcomeValidationError],
			counts[types.OutcomeAPIError], counts[types.OutcomeConnectionError])
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", ledger.DefaultLimit, "maximum number of attempts to list")
	historyCmd.Flags().Bool("yaml", false, "output attempts as YAML")

	rootCmd.AddCommand(historyCmd)
}
