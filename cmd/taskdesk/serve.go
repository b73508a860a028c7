// Serve command for the taskdesk CLI.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taskdesk/internal/httpapi"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task and note API over HTTP",
		Long: `Serve attaches the configured backend and exposes it under /api until
interrupted. The listen address comes from --addr, then server.addr in
config.yaml, then TASKDESK_SERVER_ADDR.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.ServerAddr
			}

			backend, err := a.openBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("serving", "backend", backend.Name(), "data_dir", a.settings.DataDir)
			return httpapi.Serve(ctx, addr, httpapi.NewHandler(backend, a.logger), a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	return cmd
}
