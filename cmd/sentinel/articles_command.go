package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentinel/internal/articlestore"
)

func newArticlesCommand(ctx *commandContext) *cobra.Command {
	var (
		batchID string
		source  string
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "articles",
		Short: "List cached articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer closer()

			articles, err := svc.ListArticles(cmd.Context(), articlestore.Filter{
				BatchID: batchID,
				Source:  source,
				Limit:   limit,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{"articles": articles})
			}

			out := cmd.OutOrStdout()
			if len(articles) == 0 {
				fmt.Fprintln(out, "No cached articles")
				return nil
			}
			rows := make([][]string, 0, len(articles))
			for _, a := range articles {
				rows = append(rows, []string{a.ID, a.Title, a.Source, a.FetchedAt})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{name: "ID"}, {name: "Title", width: 56}, {name: "Source"}, {name: "Fetched"}},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&batchID, "batch", "", "Filter by fetch batch")
	cmd.Flags().StringVar(&source, "source", "", "Filter by source name")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of articles to list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
