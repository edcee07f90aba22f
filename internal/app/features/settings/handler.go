// internal/app/features/settings/handler.go
package settings

import (
	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	settingsstore "github.com/dalemusser/folio/internal/app/store/settings"
	"github.com/dalemusser/folio/internal/app/system/blobstore"
	"github.com/dalemusser/folio/internal/app/system/limits"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultMaxBlobBytes caps decoded uploads when no limit is configured.
const DefaultMaxBlobBytes = 5 << 20

// Handler serves /api/settings.
type Handler struct {
	DB    *mongo.Database
	Store *settingsstore.Store
	// Blobs holds uploaded bytes in object storage. Nil keeps them inline.
	Blobs        blobstore.Store
	MaxBlobBytes int64
	Log          *zap.Logger
	ErrLog       *httperrors.ErrorLogger
}

// NewHandler constructs a Handler. blobs may be nil.
func NewHandler(db *mongo.Database, blobs blobstore.Store, maxBlobBytes int64, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	if maxBlobBytes <= 0 {
		maxBlobBytes = DefaultMaxBlobBytes
	}
	return &Handler{
		DB:           db,
		Store:        settingsstore.New(db),
		Blobs:        blobs,
		MaxBlobBytes: maxBlobBytes,
		Log:          logger,
		ErrLog:       errLog,
	}
}

// maxBody bounds an upsert request: a base64 payload of MaxBlobBytes plus
// room for the other fields.
func (h *Handler) maxBody() int64 {
	return limits.Base64Len(h.MaxBlobBytes) + limits.SettingsEnvelope
}
