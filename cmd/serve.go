package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lehigh-university-libraries/barcoder/internal/handlers"
	"github.com/lehigh-university-libraries/barcoder/internal/session"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface",
		Long: `Starts the barcoder web interface on the specified port.

The web interface lets you pick a code type, submit data to the generation
service, download the generated image and browse, export or clear the history.`,
		Example: `  # Start server on default port 8888
  barcoder serve

  # Start server against a remote service on a custom port
  barcoder serve --port 3000 --api-url https://codes.example.edu/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") && opts.cfg.Port != "" {
				port = opts.cfg.Port
			}

			client := opts.client()
			sess := session.New(client)
			if err := sess.Start(cmd.Context()); err != nil {
				// The page shows the banner; the service may come up later.
				slog.Warn("Initial history load failed", "api_url", opts.cfg.APIURL, "err", err)
			}

			handler := handlers.New(sess, client)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Barcoder interface available", "addr", addr, "url", "http://localhost"+addr, "api_url", opts.cfg.APIURL)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
