// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"time"

	"github.com/dalemusser/folio/internal/app/store/storeutil"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the admins collection name.
const Collection = "admins"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Count returns the number of admin documents (0 or 1 in practice).
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// GetByEmail looks up the admin by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a)
	return a, storeutil.Translate(err, "Admin")
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Admin, error) {
	oid, err := storeutil.ParseID(id, "Admin")
	if err != nil {
		return models.Admin{}, err
	}
	var a models.Admin
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&a)
	return a, storeutil.Translate(err, "Admin")
}

// Create inserts the admin. The unique singleton index rejects a second
// admin even when two setups race.
func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Email = normalize.Email(a.Email)
	a.Name = normalize.Name(a.Name)
	a.Singleton = models.AdminSingleton
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, apierr.AlreadyExists("Admin already exists")
		}
		return models.Admin{}, err
	}
	return a, nil
}

// DeleteAll removes every admin and reports how many were removed.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
