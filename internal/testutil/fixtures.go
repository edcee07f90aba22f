package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures inserts test documents directly, bypassing stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateAdmin inserts the admin with a bcrypt hash of password (min cost).
func (f *Fixtures) CreateAdmin(ctx context.Context, email, password, name string) models.Admin {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Singleton:    models.AdminSingleton,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "admins", a)
	return a
}

func (f *Fixtures) CreateProject(ctx context.Context, title string, order int) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:           primitive.NewObjectID(),
		Title:        title,
		Description:  title + " description",
		Technologies: []string{"Go"},
		Order:        order,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "projects", p)
	return p
}

func (f *Fixtures) CreateExperience(ctx context.Context, company string, start time.Time) models.Experience {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Experience{
		ID:           primitive.NewObjectID(),
		Company:      company,
		Position:     "Engineer",
		Description:  "Built things",
		Technologies: []string{},
		StartDate:    start.UTC(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "experience", e)
	return e
}

func (f *Fixtures) CreateSkill(ctx context.Context, name, category string, proficiency int) models.Skill {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Skill{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Category:    category,
		Proficiency: proficiency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "skills", s)
	return s
}

func (f *Fixtures) CreateMessage(ctx context.Context, name, email, body string) models.Message {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Message{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Message:   body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "messages", m)
	return m
}
