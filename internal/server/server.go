// Package server exposes the fake-news checks over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/fakecheck/internal/model"
)

// Checker produces verdicts. *verdict.Engine satisfies it.
type Checker interface {
	CheckText(ctx context.Context, req model.CheckRequest) model.Verdict
	CheckMedia(ctx context.Context, req model.MediaCheckRequest) model.Verdict
	ProviderStates() map[string]string
}

// Options configures the HTTP surface.
type Options struct {
	AllowedOrigins []string
	MaxUploadBytes int64
}

const defaultMaxUploadBytes = 10 << 20

// NewRouter builds the API router.
func NewRouter(checker Checker, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handlers{checker: checker, maxUpload: opts.MaxUploadBytes}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/check-fake-news", h.checkNews)
		r.Post("/check-fake-media", h.checkMedia)
	})

	return r
}
