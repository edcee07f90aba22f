// internal/app/features/skills/handler.go
package skills

import (
	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	skillstore "github.com/dalemusser/folio/internal/app/store/skills"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Proficiency policies for values outside [models.ProficiencyMin, models.ProficiencyMax].
const (
	PolicyReject = "reject"
	PolicyClamp  = "clamp"
)

// IsPolicy reports whether p names a known proficiency policy.
func IsPolicy(p string) bool {
	return p == PolicyReject || p == PolicyClamp
}

// Handler serves /api/skills.
type Handler struct {
	DB     *mongo.Database
	Store  *skillstore.Store
	Policy string
	Log    *zap.Logger
	ErrLog *httperrors.ErrorLogger
}

// NewHandler builds the handler; an unknown policy falls back to PolicyReject.
func NewHandler(db *mongo.Database, policy string, errLog *httperrors.ErrorLogger, logger *zap.Logger) *Handler {
	if !IsPolicy(policy) {
		policy = PolicyReject
	}
	return &Handler{
		DB:     db,
		Store:  skillstore.New(db),
		Policy: policy,
		Log:    logger,
		ErrLog: errLog,
	}
}
