// internal/app/store/skills/skillstore.go
package skillstore

import (
	"context"
	"time"

	"github.com/dalemusser/folio/internal/app/store/storeutil"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "skills"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns skills by display order, newest first within an order.
// A non-empty category restricts the result to that category.
func (s *Store) List(ctx context.Context, category string) ([]models.Skill, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Skill{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Skill, error) {
	oid, err := storeutil.ParseID(id, "Skill")
	if err != nil {
		return models.Skill{}, err
	}
	var sk models.Skill
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&sk)
	return sk, storeutil.Translate(err, "Skill")
}

// Create stores sk. A zero proficiency means "not supplied" and gets the default.
func (s *Store) Create(ctx context.Context, sk models.Skill) (models.Skill, error) {
	now := time.Now().UTC()
	sk.ID = primitive.NewObjectID()
	if sk.Proficiency == 0 {
		sk.Proficiency = models.ProficiencyDefault
	}
	sk.CreatedAt = now
	sk.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sk); err != nil {
		return models.Skill{}, storeutil.Translate(err, "Skill")
	}
	return sk, nil
}

// Update carries only the fields a caller supplied.
type Update struct {
	Name        *string
	Category    *string
	Proficiency *int
	Order       *int
}

func (s *Store) Update(ctx context.Context, id string, upd Update) (models.Skill, error) {
	oid, err := storeutil.ParseID(id, "Skill")
	if err != nil {
		return models.Skill{}, err
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Proficiency != nil {
		set["proficiency"] = *upd.Proficiency
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}

	var sk models.Skill
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&sk)
	return sk, storeutil.Translate(err, "Skill")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := storeutil.ParseID(id, "Skill")
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storeutil.Translate(mongo.ErrNoDocuments, "Skill")
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
