package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentinel/internal/api"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		batchID string
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "generate [article-id...]",
		Short: "Generate dispatch documents from cached articles",
		Long: "Generate dispatch documents for the given article IDs. With no " +
			"arguments every cached article is dispatched, optionally scoped to " +
			"one fetch batch with --batch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer closer()

			report, err := svc.GenerateBatch(cmd.Context(), api.GenerateRequest{
				ArticleIDs: args,
				BatchID:    batchID,
				Limit:      limit,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			for _, generated := range report.Generated {
				fmt.Fprintln(out, colorize(out, ansiGreen, fmt.Sprintf("Dispatch created: %s", generated.Path)))
			}
			for _, failed := range report.Failed {
				fmt.Fprintln(out, colorize(out, ansiRed, fmt.Sprintf("Failed %s: %s", failed.ArticleID, failed.Error)))
			}
			if len(report.Generated) == 0 && len(report.Failed) == 0 {
				fmt.Fprintln(out, "No cached articles to dispatch")
				return nil
			}
			fmt.Fprintf(out, "%d generated, %d failed\n", len(report.Generated), len(report.Failed))
			return nil
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Only dispatch articles from this fetch batch")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of articles to dispatch")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
