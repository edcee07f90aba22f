// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/folio/internal/app/store/storeutil"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Collection = "site_settings"

// Store provides access to the site_settings collection, one document per key.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Get returns the setting stored under key. An unknown key is not an
// error: the result carries the key and Exists=false.
func (s *Store) Get(ctx context.Context, key string) (models.SiteSetting, error) {
	var st models.SiteSetting
	err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&st)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.SiteSetting{Key: key}, nil
	}
	if err != nil {
		return models.SiteSetting{}, err
	}
	st.Exists = true
	return st, nil
}

// List returns every setting sorted by key.
func (s *Store) List(ctx context.Context) ([]models.SiteSetting, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.SiteSetting{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Exists = true
	}
	return out, nil
}

// Upsert replaces value, type and label of the setting under st.Key,
// creating it when missing. It returns the stored setting and the value
// it replaced (nil on insert) so callers can release old blob objects.
func (s *Store) Upsert(ctx context.Context, st models.SiteSetting) (models.SiteSetting, *models.SettingValue, error) {
	now := time.Now().UTC()
	newID := primitive.NewObjectID()

	update := bson.M{
		"$set": bson.M{
			"key":        st.Key,
			"value":      st.Value,
			"type":       st.Type,
			"label":      st.Label,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        newID,
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.Before)

	var prev models.SiteSetting
	err := s.c.FindOneAndUpdate(ctx, bson.M{"key": st.Key}, update, opts).Decode(&prev)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		st.ID = newID
		st.CreatedAt = now
		st.UpdatedAt = now
		st.Exists = true
		return st, nil, nil
	case err != nil:
		return models.SiteSetting{}, nil, storeutil.Translate(err, "Setting")
	}

	st.ID = prev.ID
	st.CreatedAt = prev.CreatedAt
	st.UpdatedAt = now
	st.Exists = true
	return st, &prev.Value, nil
}

// Delete removes the setting under key and returns what was removed.
// Deleting an unknown key succeeds and returns nil.
func (s *Store) Delete(ctx context.Context, key string) (*models.SiteSetting, error) {
	var prev models.SiteSetting
	err := s.c.FindOneAndDelete(ctx, bson.M{"key": key}).Decode(&prev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prev, nil
}
