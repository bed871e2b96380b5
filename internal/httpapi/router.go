// Package httpapi exposes the wellbeing service over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/workwell/core"
)

const shutdownTimeout = 10 * time.Second

// NewRouter creates the API router with all endpoints under /api.
func NewRouter(svc *core.Service) http.Handler {
	r := mux.NewRouter()
	h := &handler{svc: svc}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.health).Methods(http.MethodGet, http.MethodOptions)

	api.HandleFunc("/sectors/{company}", h.listSectors).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sectors/{company}", h.addSector).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/records", h.submitRecord).Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/score", h.score).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/sentiment", h.sentiment).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/recommendations", h.recommend).Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/heatmap/{company}", h.heatmap).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/statistics/{company}", h.statistics).Methods(http.MethodGet, http.MethodOptions)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Middleware wraps the router so unmatched requests get the same headers
	return requestLogger(corsMiddleware(r))
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		_, _ = fmt.Fprintf(os.Stderr, "🚀 Listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_, _ = fmt.Fprintln(os.Stderr, "🛑 Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}
