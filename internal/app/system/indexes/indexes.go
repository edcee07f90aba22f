// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Spec lists the desired indexes of one collection.
type Spec struct {
	Collection string
	Indexes    []mongo.IndexModel
}

// All is the desired index set for every collection the API owns.
func All() []Spec {
	return []Spec{
		{"admins", []mongo.IndexModel{
			unique("uniq_admins_email", bson.D{{Key: "email", Value: 1}}),
			unique("uniq_admins_singleton", bson.D{{Key: "singleton", Value: 1}}),
		}},
		{"site_settings", []mongo.IndexModel{
			unique("uniq_site_settings_key", bson.D{{Key: "key", Value: 1}}),
		}},
		{"projects", []mongo.IndexModel{
			plain("idx_projects_order_created", bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}}),
		}},
		{"experience", []mongo.IndexModel{
			plain("idx_experience_order_start", bson.D{{Key: "order", Value: 1}, {Key: "start_date", Value: -1}}),
		}},
		{"skills", []mongo.IndexModel{
			plain("idx_skills_order_created", bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}}),
			plain("idx_skills_category", bson.D{{Key: "category", Value: 1}}),
		}},
		{"messages", []mongo.IndexModel{
			plain("idx_messages_created", bson.D{{Key: "created_at", Value: -1}}),
		}},
	}
}

/*
EnsureAll is called at startup. Reconciling is idempotent; problems are
aggregated so every failing collection shows up in one error.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, s := range All() {
		if err := ensureIndexSet(ctx, db.Collection(s.Collection), s.Indexes); err != nil {
			problems = append(problems, s.Collection+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

func plain(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(p *bool) bool { return p != nil && *p }

func listIndexes(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet brings coll's indexes in line with desired. An index with
// the same keys is reused when its uniqueness matches (renamed if needed)
// and dropped and recreated otherwise.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, desired []mongo.IndexModel) error {
	existing, err := listIndexes(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes to reconcile.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range desired {
		name := *m.Options.Name
		wantUnique := boolVal(m.Options.Unique)
		sig := keySig(m.Keys.(bson.D))
		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", wantUnique))
		start := time.Now()

		ex, found := existing[sig]
		switch {
		case found && boolVal(ex.Unique) == wantUnique && ex.Name == name:
			log.Info("reusing existing index")
			continue
		case found:
			log.Info("replacing index", zap.String("existing_name", ex.Name), zap.Bool("existing_unique", boolVal(ex.Unique)))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				log.Warn("drop existing index failed", zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s: drop %s failed: %v", name, ex.Name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			log.Warn("index ensure failed", zap.Error(err))
			if wantUnique && wafflemongo.IsDup(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index (duplicates present)", name))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			continue
		}
		log.Info("index ensured", zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
