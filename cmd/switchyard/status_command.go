package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"switchyard/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, status)
				}

				uptime := time.Duration(status.UptimeMillis) * time.Millisecond
				rows := [][]string{
					{"Running", yesNo(status.Running)},
					{"Uptime", uptime.Truncate(time.Second).String()},
					{"Ticks", fmt.Sprintf("%d", status.Ticks)},
					{"Layout", status.Layout},
					{"Staged", strings.Join(status.Staged, ", ")},
					{"Sources", fmt.Sprintf("%d", status.Sources)},
					{"Audio taps", fmt.Sprintf("%d", status.Taps)},
					{"Canvas", fmt.Sprintf("%dx%d @ %d fps", status.Width, status.Height, status.FPS)},
					{"Hotplug", yesNo(status.Hotplug)},
				}
				if status.LastEvent != "" {
					rows = append(rows, []string{"Last device event", status.LastEvent})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
