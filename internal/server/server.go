// Package server exposes the resolver over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	xiyanmiddleware "github.com/XGenerationLab/XiYan-DateResolver/internal/server/middleware"
	"github.com/XGenerationLab/XiYan-DateResolver/libdate"
)

// Resolver is the part of libdate.Engine the API depends on.
type Resolver interface {
	ResolveAll(ctx context.Context, anchor time.Time, expressions []string) ([]libdate.Resolution, error)
	BuildDateTimeComment(anchor time.Time, expressions []string) string
	Categories() []libdate.Category
}

type Dependencies struct {
	Resolver Resolver
	Logger   zerolog.Logger
	// Now supplies the anchor when a request omits one. Defaults to time.Now.
	Now func() time.Time
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// Location is the zone requests without an explicit anchor are resolved in.
	Location     *time.Location
	Dependencies Dependencies
}

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

// ConfigureRouter builds the API routes.
func ConfigureRouter(config Config) http.Handler {
	logger := config.Dependencies.Logger
	h := newHandler(config)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(xiyanmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/patterns", h.ListPatterns)
		r.Post("/resolve", h.Resolve)
		r.Post("/comment", h.Comment)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	logger := config.Dependencies.Logger
	return &WebAPI{
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           ConfigureRouter(config),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: config.ShutdownTimeout,
	}
}

// Start listens on the configured address and serves until ctx is done.
func (w *WebAPI) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", w.server.Addr)
	if err != nil {
		return err
	}
	return w.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (w *WebAPI) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.Info().Str("addr", ln.Addr().String()).Msg("starting server")
		serverErrors <- w.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		timeout := w.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
