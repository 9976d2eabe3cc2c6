package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sentinel/internal/api"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var (
		topic    string
		general  bool
		category string
		country  string
		limit    int
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch news articles into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			if topic == "" && !general {
				return fmt.Errorf("either --topic or --general must be specified")
			}

			svc, closer, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer closer()

			resp, err := svc.FetchNews(cmd.Context(), api.FetchRequest{
				Topic:    topic,
				Category: category,
				Country:  country,
				Limit:    limit,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, resp)
			}

			out := cmd.OutOrStdout()
			if resp.Count == 0 {
				fmt.Fprintln(out, "No articles found")
				return nil
			}
			rows := make([][]string, 0, len(resp.Articles))
			for _, a := range resp.Articles {
				rows = append(rows, []string{a.ID, a.Title, a.Source, a.PublishedAt})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{name: "ID"}, {name: "Title", width: 56}, {name: "Source"}, {name: "Published"}},
				rows,
			))
			fmt.Fprintf(out, "Cached %d article(s) in batch %s\n", resp.Count, resp.BatchID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&topic, "topic", "t", "", "Search topic or keywords")
	cmd.Flags().BoolVarP(&general, "general", "g", false, "Fetch top headlines instead of a topic search")
	cmd.Flags().StringVar(&category, "category", "", "Category for top headlines (business, technology, ...)")
	cmd.Flags().StringVar(&country, "country", "", "Country code for top headlines")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Number of articles to fetch")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
