// internal/app/features/adminsetup/routes.go
package adminsetup

import (
	"github.com/dalemusser/folio/internal/app/system/auth"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	limited := ratelimit.Middleware(h.Limiter, "admin", h.Log)

	r.Get("/setup", h.ServeSetupStatus)
	r.With(limited).Post("/setup", h.HandleSetup)
	r.With(limited).Delete("/reset", h.HandleReset)
	r.With(auth.RequireAdmin).Get("/stats", h.ServeStats)
	return r
}
