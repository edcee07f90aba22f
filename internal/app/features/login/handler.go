// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"time"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/auth"
	"github.com/dalemusser/folio/internal/app/system/limits"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Authenticator is the part of auth.Service the sign-in endpoints use.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (auth.Identity, error)
	IssueToken(adminID string) (auth.Token, error)
	Admin(ctx context.Context, adminID string) (auth.Identity, error)
}

type Handler struct {
	Auth       Authenticator
	SessionMgr *auth.SessionManager
	Limiter    ratelimit.Limiter
	ErrLog     *httperrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(a Authenticator, sm *auth.SessionManager, limiter ratelimit.Limiter, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Auth: a, SessionMgr: sm, Limiter: limiter, ErrLog: errLog, Log: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt string        `json:"expiresAt"`
	Admin     auth.Identity `json:"admin"`
}

// HandleLogin serves POST /api/auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httperrors.DecodeJSON(w, r, &req, limits.MaxCredentialsBody); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if apierr.IsDomain(err) {
			h.Log.Info("sign-in failed",
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.Error(err))
		}
		h.ErrLog.Write(w, r, err)
		return
	}

	tok, err := h.Auth.IssueToken(id.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "issue token failed", err)
		return
	}
	if err := h.SessionMgr.SetCookie(w, r, tok); err != nil {
		h.ErrLog.LogServerError(w, r, "save session cookie failed", err)
		return
	}

	h.Log.Info("admin signed in",
		zap.String("admin_id", id.ID),
		zap.String("ip", ratelimit.ClientIP(r)))

	httperrors.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt.UTC().Format(time.RFC3339),
		Admin:     id,
	})
}

// HandleLogout serves POST /api/auth/logout. The cookie is cleared; the
// token itself stays valid until it expires.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.ClearCookie(w, r); err != nil {
		h.ErrLog.LogServerError(w, r, "clear session cookie failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
}

// ServeSession serves GET /api/auth/session for a signed-in admin.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	adminID, _ := auth.AdminID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id, err := h.Auth.Admin(ctx, adminID)
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, id)
}
