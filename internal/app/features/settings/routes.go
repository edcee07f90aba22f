// internal/app/features/settings/routes.go
package settings

import (
	"github.com/dalemusser/folio/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/settings. Reads are public.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/content", h.ServeContent)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireAdmin)
		pr.Post("/", h.Upsert)
		pr.Delete("/", h.Delete)
	})
	return r
}
