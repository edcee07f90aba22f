// internal/app/features/login/routes.go
package login

import (
	"github.com/dalemusser/folio/internal/app/system/auth"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /api/auth. The session manager's LoadSession
// must already be in the middleware chain.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.With(ratelimit.Middleware(h.Limiter, "login", h.Log)).Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.With(auth.RequireAdmin).Get("/session", h.ServeSession)
	return r
}
