// internal/app/store/messages/messagestore.go
package messagestore

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

const Collection = "messages"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns the inbox, newest first.
func (s *Store) List(ctx context.Context) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Message{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (models.Message, error) {
	oid, err := storeutil.ParseID(id, "Message")
	if err != nil {
		return models.Message{}, err
	}
	var m models.Message
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	return m, storeutil.Translate(err, "Message")
}

func (s *Store) Create(ctx context.Context, m models.Message) (models.Message, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Message{}, storeutil.Translate(err, "Message")
	}
	return m, nil
}

// Update carries only the fields a caller supplied.
type Update struct {
	Name    *string
	Email   *string
	Subject *string
	Message *string
}

func (s *Store) Update(ctx context.Context, id string, upd Update) (models.Message, error) {
	oid, err := storeutil.ParseID(id, "Message")
	if err != nil {
		return models.Message{}, err
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		set["email"] = *upd.Email
	}
	if upd.Subject != nil {
		set["subject"] = *upd.Subject
	}
	if upd.Message != nil {
		set["message"] = *upd.Message
	}

	var m models.Message
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&m)
	return m, storeutil.Translate(err, "Message")
}

func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := storeutil.ParseID(id, "Message")
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return storeutil.Translate(mongo.ErrNoDocuments, "Message")
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
