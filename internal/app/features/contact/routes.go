// internal/app/features/contact/routes.go
package contact

import (
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /api/contact.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(h.Limiter, "contact", h.Log)).Post("/", h.HandleSubmit)
	return r
}
