package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/XGenerationLab/XiYan-DateResolver/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the resolver over HTTP",
	Long: `Start an HTTP server exposing:

  GET  /healthz
  GET  /api/v1/patterns
  POST /api/v1/resolve   {"expressions": [...], "now": "2024-03-15"}
  POST /api/v1/comment   {"expressions": [...]}

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		logger := zerolog.New(os.Stderr).
			Level(cfg.Level()).
			With().
			Timestamp().
			Logger()

		api := server.NewWebAPI(server.Config{
			Addr:            cfg.Server.Addr,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			Location:        loc,
			Dependencies: server.Dependencies{
				Resolver: newEngine(logger),
				Logger:   logger,
			},
		})

		if err := api.Start(cmd.Context()); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().Int("workers", 0, "Number of expressions resolved concurrently per request")
	serveCmd.Flags().Bool("last-complete-week", false, "Recognize \"本月最后一个完整周\" expressions")
}
