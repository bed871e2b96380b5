package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/workwell/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd runs the JSON HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wellbeing API over HTTP",
	Long: `Start a JSON HTTP API backed by the configured record and cache backends.

Routes:
  GET  /api/health
  GET  /api/sectors/{company}
  POST /api/sectors/{company}
  POST /api/records
  POST /api/score
  POST /api/sentiment
  POST /api/recommendations
  GET  /api/heatmap/{company}?days=30&metric=stress&limit=5
  GET  /api/statistics/{company}?days=30

Allowed CORS origins come from WORKWELL_CORS_ALLOWED_ORIGINS (default "*").
The server shuts down gracefully on SIGINT or SIGTERM.

Examples:
  workwell serve
  workwell serve --addr 127.0.0.1:9000 --record-backend postgresql \
    --record-db-connect "host=localhost user=workwell password=... dbname=workwell"`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	return httpapi.Serve(ctx, cfg.Addr, httpapi.NewRouter(svc))
}
