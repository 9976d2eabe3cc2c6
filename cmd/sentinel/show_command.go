package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sentinel/internal/dispatch"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var (
		tag  string
		date string
	)

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print an archived dispatch document",
		Long:  "Print a dispatch document. With no path the most recent dispatch is shown, optionally filtered by --tag or --date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closer, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer closer()

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				latest, err := svc.LatestDispatch(dispatch.Filter{Tag: tag, Date: date})
				if err != nil {
					if errors.Is(err, dispatch.ErrNotFound) {
						return fmt.Errorf("no dispatches archived")
					}
					return err
				}
				path = latest.Path
			}

			doc, err := svc.ReadDispatch(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc.Body)
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Pick the latest dispatch with this tag")
	cmd.Flags().StringVar(&date, "date", "", "Pick the latest dispatch on this date")
	return cmd
}
