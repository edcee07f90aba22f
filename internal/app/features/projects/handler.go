// internal/app/features/projects/handler.go
package projects

import (
	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	projectstore "github.com/dalemusser/folio/internal/app/store/projects"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves /api/projects.
type Handler struct {
	DB     *mongo.Database
	Store  *projectstore.Store
	Log    *zap.Logger
	ErrLog *httperrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  projectstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
