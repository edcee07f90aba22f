// internal/app/features/contact/handler.go
package contact

import (
	"context"
	"net/http"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	messagestore "github.com/dalemusser/folio/internal/app/store/messages"
	"github.com/dalemusser/folio/internal/app/system/htmlsanitize"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/limits"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/folio/internal/app/system/timeouts"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler accepts public contact-form submissions.
type Handler struct {
	DB      *mongo.Database
	Store   *messagestore.Store
	Limiter ratelimit.Limiter
	Log     *zap.Logger
	ErrLog  *httperrors.ErrorLogger
}

func NewHandler(db *mongo.Database, limiter ratelimit.Limiter, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Store:   messagestore.New(db),
		Limiter: limiter,
		Log:     logger,
		ErrLog:  errLog,
	}
}

type submission struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func (s *submission) clean() {
	s.Name = htmlsanitize.StripTags(s.Name)
	s.Email = normalize.Email(s.Email)
	s.Subject = htmlsanitize.StripTags(s.Subject)
	s.Message = htmlsanitize.StripTags(s.Message)
}

// HandleSubmit serves POST /api/contact.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in submission
	if err := httperrors.DecodeJSON(w, r, &in, limits.MaxContactBody); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}
	in.clean()
	if err := inputval.Validate(in).Err(); err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.Create(ctx, models.Message{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	})
	if err != nil {
		h.ErrLog.Write(w, r, err)
		return
	}

	h.Log.Info("contact message received",
		zap.String("message_id", m.ID.Hex()),
		zap.String("ip", ratelimit.ClientIP(r)))

	httperrors.WriteJSON(w, http.StatusCreated, map[string]string{
		"id":      m.ID.Hex(),
		"message": "Message sent",
	})
}
