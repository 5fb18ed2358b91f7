package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kyu49/euonymus/internal/errors"
	"github.com/kyu49/euonymus/internal/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live demo server",
		Long: `Serve the demo app. Every page load gets its own session; the page
stays in sync with the server over a websocket.

Examples:
  euonymus serve
  euonymus serve --port=8080 --config=euonymus.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, server.New(cfg, flags.logger(cmd.ErrOrStderr())))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	return cmd
}

func runServe(ctx context.Context, srv *server.Server) error {
	if err := srv.ListenAndServe(ctx); err != nil {
		return errors.New("E050").Wrap(err)
	}
	return nil
}
