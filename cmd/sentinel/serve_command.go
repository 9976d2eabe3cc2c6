package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sentinel/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lock, err := server.AcquireLock(cfg.LockPath())
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			svc, closer, err := ctx.buildService()
			if err != nil {
				return err
			}
			defer closer()

			srv, err := server.New(cfg.Paths.APIBind, cfg.Paths.APIToken, svc, ctx.ensureLogger())
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			pruneArticleCache(runCtx, svc, cfg, ctx.ensureLogger())
			if err := srv.Start(runCtx); err != nil {
				return err
			}
			<-runCtx.Done()
			srv.Stop()
			return nil
		},
	}
}
