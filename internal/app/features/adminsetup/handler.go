// internal/app/features/adminsetup/handler.go
package adminsetup

import (
	"context"
	"net/http"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	experiencestore "github.com/dalemusser/folio/internal/app/store/experience"
	messagestore "github.com/dalemusser/folio/internal/app/store/messages"
	projectstore "github.com/dalemusser/folio/internal/app/store/projects"
	skillstore "github.com/dalemusser/folio/internal/app/store/skills"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/auth"
	"github.com/dalemusser/folio/internal/app/system/limits"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Accounts is the admin lifecycle subset of auth.Service.
type Accounts interface {
	SetupRequired(ctx context.Context) (bool, error)
	CreateAdmin(ctx context.Context, in auth.CreateAdminInput) (auth.Identity, error)
	ResetAdmin(ctx context.Context, key string) (int64, error)
}

// Counter counts the documents of one collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	Accounts Accounts
	Counters map[string]Counter
	Limiter  ratelimit.Limiter
	ErrLog   *httperrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(accounts Accounts, db *mongo.Database, limiter ratelimit.Limiter, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Accounts: accounts,
		Counters: map[string]Counter{
			"projects":   projectstore.New(db),
			"experience": experiencestore.New(db),
			"skills":     skillstore.New(db),
			"messages":   messagestore.New(db),
		},
		Limiter: limiter,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// ServeSetupStatus tells the admin UI whether to show setup or sign-in.
func (h *Handler) ServeSetupStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	required, err := h.Accounts.SetupRequired(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "setup status failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, map[string]bool{"setupRequired": required})
}

// HandleSetup creates the one admin account.
func (h *Handler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	var in auth.CreateAdminInput
	if err := httperrors.DecodeJSON(w, r, &in, limits.MaxCredentialsBody); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := h.Accounts.CreateAdmin(ctx, in)
	if err != nil {
		if apierr.IsDomain(err) {
			h.Log.Warn("admin setup rejected",
				zap.String("ip", ratelimit.ClientIP(r)),
				zap.String("reason", apierr.Message(err)))
		}
		h.ErrLog.Write(w, r, err)
		return
	}

	h.Log.Info("admin account created",
		zap.String("admin_id", id.ID),
		zap.String("ip", ratelimit.ClientIP(r)))

	httperrors.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Admin created successfully",
		"id":      id.ID,
	})
}

// HandleReset deletes the admin account when x-reset-key matches.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Accounts.ResetAdmin(ctx, r.Header.Get("x-reset-key"))
	if err != nil {
		if apierr.IsDomain(err) {
			h.Log.Warn("admin reset refused",
				zap.String("ip", ip),
				zap.String("reason", apierr.Message(err)))
		}
		h.ErrLog.Write(w, r, err)
		return
	}

	h.Log.Warn("admin accounts reset",
		zap.Int64("deleted", n),
		zap.String("ip", ip))

	httperrors.WriteJSON(w, http.StatusOK, map[string]any{
		"message":      "Admin accounts reset",
		"deletedCount": n,
	})
}

// ServeStats returns document counts per content collection.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	out := make(map[string]int64, len(h.Counters))
	for name, c := range h.Counters {
		n, err := c.Count(ctx)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "count "+name+" failed", err)
			return
		}
		out[name] = n
	}
	httperrors.WriteJSON(w, http.StatusOK, out)
}
