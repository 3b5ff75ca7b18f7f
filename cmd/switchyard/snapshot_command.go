package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"switchyard/internal/ipc"
)

func newSnapshotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <path>",
		Short: "Save the latest program frame as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Snapshot(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", resp.Path)
				return nil
			})
		},
	}
}
