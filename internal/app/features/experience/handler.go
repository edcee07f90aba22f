// internal/app/features/experience/handler.go
package experience

import (
	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	experiencestore "github.com/dalemusser/folio/internal/app/store/experience"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves /api/experience.
type Handler struct {
	DB     *mongo.Database
	Store  *experiencestore.Store
	Log    *zap.Logger
	ErrLog *httperrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  experiencestore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
