// Package router sets up all HTTP routes and middleware chains for the
// memory book API.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"memorybook/internal/handlers"
	"memorybook/internal/middleware"
)

// Presign issuance limit: 30 upload URLs per client IP per minute.
const (
	uploadRateLimit  = 30
	uploadRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The returned limiter must be stopped on
// shutdown.
func New(api *handlers.API) (chi.Router, *middleware.RateLimiter) {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", api.Health)

	uploadLimiter := middleware.NewRateLimiter(uploadRateLimit, uploadRateWindow)

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", api.Templates)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", api.ProjectCreate)
			r.Get("/{id}", api.ProjectGet)
			r.Delete("/{id}", api.ProjectDelete)
			r.Put("/{id}/cover", api.CoverUpdate)

			r.Post("/{id}/contributions", api.ContributionCreate)
			r.Get("/{id}/contributions", api.ContributionList)

			r.Get("/{id}/book", api.BookGet)
			r.Get("/{id}/preview", api.Preview)
			r.Get("/{id}/export", api.Export)
		})

		r.Route("/contributions", func(r chi.Router) {
			r.Patch("/{id}/exclusion", api.ContributionExclusion)
			r.Post("/{id}/pages", api.PageAdd)
			r.Put("/{id}/pages/order", api.PageReorder)
			r.Put("/{id}/active-page", api.ActivePageSelect)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Delete("/{id}", api.PageDelete)
			r.Put("/{id}/template", api.TemplateSwitch)
			r.Put("/{id}/components/{index}", api.ComponentEdit)
		})

		r.With(uploadLimiter.Middleware).Post("/uploads", api.UploadPresign)
	})

	return r, uploadLimiter
}
