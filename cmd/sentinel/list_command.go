package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sentinel/internal/api"
	"sentinel/internal/dispatch"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		tag     string
		date    string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived dispatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer closer()

			dispatches, err := svc.ListDispatches(dispatch.Filter{Tag: tag, Date: date})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, api.DispatchListResponse{Dispatches: dispatches})
			}

			out := cmd.OutOrStdout()
			if len(dispatches) == 0 {
				fmt.Fprintln(out, "No dispatches archived")
				return nil
			}
			rows := make([][]string, 0, len(dispatches))
			for _, d := range dispatches {
				rows = append(rows, []string{d.Date, d.Title, d.Voice, strings.Join(d.Tags, ", ")})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{name: "Date"}, {name: "Title", width: 48}, {name: "Voice"}, {name: "Tags", width: 36}},
				rows,
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Filter by tag (substring match)")
	cmd.Flags().StringVar(&date, "date", "", "Filter by date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
