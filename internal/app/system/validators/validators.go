// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("admins", adminsSchema())
	ensure("projects", projectsSchema())
	ensure("experience", experienceSchema())
	ensure("skills", skillsSchema())
	ensure("site_settings", siteSettingsSchema())
	ensure("messages", messagesSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection reports created==true only when it created the collection.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	if exists, listErr := collectionExists(ctx, db, name); listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrorMatches(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrorMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrorMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrorMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank  = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	integer   = bson.M{"bsonType": bson.A{"int", "long"}}
	stringArr = bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}}
	date      = bson.M{"bsonType": "date"}
)

func toA(ss []string) bson.A {
	out := make(bson.A, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func schema(required bson.A, props bson.M) bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": props,
	}}
}

func adminsSchema() bson.M {
	return schema(bson.A{"email", "password_hash", "name", "singleton"}, bson.M{
		"email":         nonBlank,
		"password_hash": nonBlank,
		"name":          nonBlank,
		"singleton":     bson.M{"enum": bson.A{models.AdminSingleton}},
	})
}

func projectsSchema() bson.M {
	return schema(bson.A{"title", "description"}, bson.M{
		"title":        nonBlank,
		"description":  nonBlank,
		"technologies": stringArr,
		"featured":     bson.M{"bsonType": "bool"},
		"order":        integer,
	})
}

func experienceSchema() bson.M {
	return schema(bson.A{"company", "position", "description", "start_date"}, bson.M{
		"company":      nonBlank,
		"position":     nonBlank,
		"description":  nonBlank,
		"technologies": stringArr,
		"start_date":   date,
		"end_date":     date,
		"current":      bson.M{"bsonType": "bool"},
		"order":        integer,
	})
}

func skillsSchema() bson.M {
	return schema(bson.A{"name", "category", "proficiency"}, bson.M{
		"name":     nonBlank,
		"category": bson.M{"enum": toA(models.SkillCategories)},
		"proficiency": bson.M{
			"bsonType": bson.A{"int", "long"},
			"minimum":  models.ProficiencyMin,
			"maximum":  models.ProficiencyMax,
		},
		"order": integer,
	})
}

func siteSettingsSchema() bson.M {
	return schema(bson.A{"key", "value", "type"}, bson.M{
		"key":  nonBlank,
		"type": bson.M{"enum": toA(models.SettingTypes)},
		"value": bson.M{
			"bsonType": "object",
			"required": bson.A{"kind"},
			"properties": bson.M{
				"kind": bson.M{"enum": bson.A{models.ValueKindRef, models.ValueKindBlob}},
			},
		},
	})
}

func messagesSchema() bson.M {
	return schema(bson.A{"name", "email", "message"}, bson.M{
		"name":    nonBlank,
		"email":   nonBlank,
		"message": nonBlank,
		"subject": bson.M{"bsonType": "string"},
	})
}
