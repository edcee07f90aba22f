// internal/app/features/messages/handler.go
package messages

import (
	"context"
	"net/http"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	messagestore "github.com/dalemusser/folio/internal/app/store/messages"
	"github.com/dalemusser/folio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin inbox at /api/messages.
type Handler struct {
	DB     *mongo.Database
	Store  *messagestore.Store
	Log    *zap.Logger
	ErrLog *httperrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  messagestore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}

type updateInput struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email   *string `json:"email" validate:"omitempty,email,max=254"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Message *string `json:"message" validate:"omitempty,min=1,max=5000"`
}

func strip(s *string) {
	if s != nil {
		*s = htmlsanitize.StripTags(*s)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list messages failed", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := httperrors.DecodeJSON(w, r, &in, 0); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	strip(in.Name)
	strip(in.Subject)
	strip(in.Message)
	if in.Email != nil {
		*in.Email = normalize.Email(*in.Email)
	}
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Update(ctx, chi.URLParam(r, "id"), messagestore.Update{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Store.Delete(ctx, id); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	h.Log.Info("message deleted", zap.String("message_id", id))
	httperrors.WriteJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}
