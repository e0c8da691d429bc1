package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/page-warden/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and the
// review API routes. The review API owns the whole path space: the operation
// verb is a path segment, and everything else is create-or-update.
func NewRouter(reviewHandler *handler.ReviewHandler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/*", reviewHandler.List)
	r.Post("/*", reviewHandler.Mutate)
	r.Options("/*", reviewHandler.Preflight)

	return r
}
