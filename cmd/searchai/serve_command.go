package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"searchai/internal/api"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := ctx.openStore(runCtx)
			if err != nil {
				return err
			}
			coordinator, err := ctx.buildCoordinator(runCtx, st)
			if err != nil {
				return err
			}

			bind := strings.TrimSpace(bindFlag)
			if bind == "" {
				bind = cfg.Paths.APIBind
			}
			server, err := api.NewServer(bind, coordinator, st, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving searchai API on http://%s (Ctrl+C to stop)\n", bind)
			return server.Start(runCtx)
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Listen address (defaults to paths.api_bind)")
	return cmd
}
