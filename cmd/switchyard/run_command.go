package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"switchyard/internal/ipc"
	"switchyard/internal/logging"
	"switchyard/internal/session"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run a live session in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			sess, err := session.New(cfg, logger)
			if err != nil {
				return fmt.Errorf("create session: %w", err)
			}
			if err := sess.Start(signalCtx); err != nil {
				return fmt.Errorf("start session: %w", err)
			}
			defer sess.Stop()

			ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), sess, cancel, logger)
			if err != nil {
				return fmt.Errorf("start IPC server: %w", err)
			}
			defer ipcServer.Close()
			ipcServer.Serve()

			<-signalCtx.Done()
			logger.Info("switchyard shutting down")
			return nil
		},
	}
}
