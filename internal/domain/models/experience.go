// internal/domain/models/experience.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience is one entry of the work history timeline.
//
// When Current is true the position is ongoing and EndDate carries no
// meaning; Normalize drops it so callers never see a stale end date.
type Experience struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Company      string             `bson:"company" json:"company"`
	Position     string             `bson:"position" json:"position"`
	Description  string             `bson:"description" json:"description"`
	Technologies []string           `bson:"technologies" json:"technologies"`
	StartDate    time.Time          `bson:"start_date" json:"startDate"`
	EndDate      *time.Time         `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Order        int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Normalize applies the read-side invariant for ongoing positions.
func (e *Experience) Normalize() {
	if e.Current {
		e.EndDate = nil
	}
}
