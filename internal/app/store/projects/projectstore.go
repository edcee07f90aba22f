// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/folio/internal/app/store/storeutil"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "projects"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns every project, display order first, newest first within an order.
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Project, error) {
	oid, err := storeutil.ParseID(id, "Project")
	if err != nil {
		return models.Project{}, err
	}
	var p models.Project
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	return p, storeutil.Translate(err, "Project")
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Technologies = normalize.List(p.Technologies)
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, storeutil.Translate(err, "Project")
	}
	return p, nil
}

// Update carries only the fields a caller supplied.
type Update struct {
	Title           *string
	Description     *string
	LongDescription *string
	Technologies    *[]string
	ImageURL        *string
	GithubURL       *string
	LiveURL         *string
	Featured        *bool
	Order           *int
}

func (u Update) set() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.LongDescription != nil {
		set["long_description"] = *u.LongDescription
	}
	if u.Technologies != nil {
		set["technologies"] = normalize.List(*u.Technologies)
	}
	if u.ImageURL != nil {
		set["image_url"] = *u.ImageURL
	}
	if u.GithubURL != nil {
		set["github_url"] = *u.GithubURL
	}
	if u.LiveURL != nil {
		set["live_url"] = *u.LiveURL
	}
	if u.Featured != nil {
		set["featured"] = *u.Featured
	}
	if u.Order != nil {
		set["order"] = *u.Order
	}
	return set
}

// Update applies upd and returns the stored project afterwards.
// Concurrent updates are last-write-wins per field.
func (s *Store) Update(ctx context.Context, id string, upd Update) (models.Project, error) {
	oid, err := storeutil.ParseID(id, "Project")
	if err != nil {
		return models.Project{}, err
	}
	set := upd.set()
	set["updated_at"] = time.Now().UTC()

	var p models.Project
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	return p, storeutil.Translate(err, "Project")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := storeutil.ParseID(id, "Project")
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storeutil.Translate(mongo.ErrNoDocuments, "Project")
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
