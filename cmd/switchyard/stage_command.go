package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"switchyard/internal/ipc"
	"switchyard/internal/layout"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage [source-id...]",
		Short: "Replace the staged sources (at most two)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SetStage(args)
				if err != nil {
					return err
				}
				if len(resp.Staged) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "stage cleared")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "staged: %s\n", strings.Join(resp.Staged, ", "))
				return nil
			})
		},
	}
	return cmd
}

func newLayoutCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <mode>",
		Short: "Switch the layout mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				modes := layout.Modes()
				names := make([]string, 0, len(modes))
				for _, mode := range modes {
					names = append(names, string(mode))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "available modes: %s\n", strings.Join(names, ", "))
				return nil
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.SetLayout(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "layout: %s\n", resp.Layout)
				return nil
			})
		},
	}
	return cmd
}
