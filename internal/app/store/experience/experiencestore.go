// internal/app/store/experience/experiencestore.go
package experiencestore

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

const Collection = "experience"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns entries by display order, most recent start date first.
func (s *Store) List(ctx context.Context) ([]models.Experience, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "start_date", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Experience{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Experience, error) {
	oid, err := storeutil.ParseID(id, "Experience")
	if err != nil {
		return models.Experience{}, err
	}
	var e models.Experience
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&e); err != nil {
		return models.Experience{}, storeutil.Translate(err, "Experience")
	}
	e.Normalize()
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.Experience) (models.Experience, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.Technologies = normalize.List(e.Technologies)
	e.Normalize()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Experience{}, storeutil.Translate(err, "Experience")
	}
	return e, nil
}

// Update carries only the fields a caller supplied. ClearEndDate removes
// a stored end date (an explicit null from the client).
type Update struct {
	Company      *string
	Position     *string
	Description  *string
	Technologies *[]string
	StartDate    *time.Time
	EndDate      *time.Time
	ClearEndDate bool
	Current      *bool
	Order        *int
}

func (u Update) doc() bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Company != nil {
		set["company"] = *u.Company
	}
	if u.Position != nil {
		set["position"] = *u.Position
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Technologies != nil {
		set["technologies"] = normalize.List(*u.Technologies)
	}
	if u.StartDate != nil {
		set["start_date"] = u.StartDate.UTC()
	}
	if u.Order != nil {
		set["order"] = *u.Order
	}
	if u.Current != nil {
		set["current"] = *u.Current
	}

	clear := u.ClearEndDate || (u.Current != nil && *u.Current)
	if u.EndDate != nil && !clear {
		set["end_date"] = u.EndDate.UTC()
	}
	doc := bson.M{"$set": set}
	if clear {
		doc["$unset"] = bson.M{"end_date": ""}
	}
	return doc
}

// Update applies upd and returns the stored entry afterwards. Setting
// current=true clears end_date.
func (s *Store) Update(ctx context.Context, id string, upd Update) (models.Experience, error) {
	oid, err := storeutil.ParseID(id, "Experience")
	if err != nil {
		return models.Experience{}, err
	}
	var e models.Experience
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, upd.doc(),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&e)
	if err != nil {
		return models.Experience{}, storeutil.Translate(err, "Experience")
	}
	e.Normalize()
	return e, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := storeutil.ParseID(id, "Experience")
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storeutil.Translate(mongo.ErrNoDocuments, "Experience")
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
