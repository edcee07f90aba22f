// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a portfolio project card.
type Project struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	LongDescription string             `bson:"long_description,omitempty" json:"longDescription,omitempty"`
	Technologies    []string           `bson:"technologies" json:"technologies"`
	ImageURL        string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	GithubURL       string             `bson:"github_url,omitempty" json:"githubUrl,omitempty"`
	LiveURL         string             `bson:"live_url,omitempty" json:"liveUrl,omitempty"`
	Featured        bool               `bson:"featured" json:"featured"`
	Order           int                `bson:"order" json:"order"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
