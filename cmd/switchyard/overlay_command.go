package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"switchyard/internal/ipc"
)

func newOverlayCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Inspect and toggle overlay elements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.OverlayGet()
				if err != nil {
					return err
				}
				return writeJSON(cmd, resp.Settings)
			})
		},
	}

	cmd.AddCommand(newOverlayToggleCommand(ctx, "show", true))
	cmd.AddCommand(newOverlayToggleCommand(ctx, "hide", false))
	return cmd
}

func newOverlayToggleCommand(ctx *commandContext, use string, show bool) *cobra.Command {
	short := "Hide an overlay element"
	if show {
		short = "Show an overlay element"
	}
	return &cobra.Command{
		Use:       use + " <element>",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"logo", "banner", "lower-third", "ticker", "countdown", "text", "bullets"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.OverlayToggle(args[0], show); err != nil {
					return err
				}
				state := "hidden"
				if show {
					state = "visible"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], state)
				return nil
			})
		},
	}
}
