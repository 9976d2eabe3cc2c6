package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sentinel/internal/dispatch"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	var (
		tag   string
		date  string
		voice string
	)

	cmd := &cobra.Command{
		Use:   "read [path]",
		Short: "Narrate a dispatch through the playback engine",
		Long:  "Send a dispatch to the playback engine. With no path the most recent dispatch is narrated, optionally filtered by --tag or --date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			narrator, index, err := ctx.buildNarrator()
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				latest, err := index.Latest(dispatch.Filter{Tag: tag, Date: date})
				if err != nil {
					if errors.Is(err, dispatch.ErrNotFound) {
						return fmt.Errorf("no dispatches archived")
					}
					return err
				}
				path = latest.Path
			}

			doc, err := index.Read(path)
			if err != nil {
				return err
			}
			if err := narrator.Narrate(cmd.Context(), doc, voice); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Narrated %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Pick the latest dispatch with this tag")
	cmd.Flags().StringVar(&date, "date", "", "Pick the latest dispatch on this date")
	cmd.Flags().StringVar(&voice, "voice", "", "Override the dispatch voice family")
	return cmd
}
