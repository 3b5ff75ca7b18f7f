package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"switchyard/internal/ipc"
)

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List sources and toggle their flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Sources()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				rows := make([][]string, 0, len(resp.Sources))
				for _, src := range resp.Sources {
					rows = append(rows, []string{
						src.ID,
						src.Type,
						src.Label,
						yesNo(src.Staged),
						yesNo(src.Muted),
						yesNo(src.Blur),
						yesNo(src.HasAudio),
						yesNo(src.HasVideo),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Type", "Label", "Staged", "Muted", "Blur", "Audio", "Video"},
					rows, nil))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")

	cmd.AddCommand(newSourcesMuteCommand(ctx, "mute", true))
	cmd.AddCommand(newSourcesMuteCommand(ctx, "unmute", false))
	cmd.AddCommand(newSourcesBlurCommand(ctx))
	cmd.AddCommand(newSourcesGainCommand(ctx))
	cmd.AddCommand(newTapsCommand(ctx))
	return cmd
}

func newSourcesMuteCommand(ctx *commandContext, use string, muted bool) *cobra.Command {
	short := "Unmute a source"
	if muted {
		short = "Mute a source"
	}
	return &cobra.Command{
		Use:   use + " <source-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SetMuted(args[0], muted); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%sd %s\n", use, args[0])
				return nil
			})
		},
	}
}

func newSourcesBlurCommand(ctx *commandContext) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "blur <source-id>",
		Short: "Toggle background blur for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SetBlur(args[0], !off); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "blur %s for %s\n", map[bool]string{true: "disabled", false: "enabled"}[off], args[0])
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Disable blur instead of enabling it")
	return cmd
}

func newSourcesGainCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gain <source-id> <value>",
		Short: "Set the mix gain for a staged source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gain, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parse gain %q: %w", args[1], err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.SetGain(args[0], gain); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "gain %.2f for %s\n", gain, args[0])
				return nil
			})
		},
	}
}

func newTapsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "taps",
		Short: "List mix-bus connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Taps()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}
				rows := make([][]string, 0, len(resp.Taps))
				for _, tap := range resp.Taps {
					rows = append(rows, []string{
						tap.SourceID,
						tap.Label,
						fmt.Sprintf("%.2f", tap.Gain),
						yesNo(tap.Live),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Source", "Label", "Gain", "Live"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit machine-readable JSON")
	return cmd
}
