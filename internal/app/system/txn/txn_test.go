package txn_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/folio/internal/app/system/txn"
	"github.com/dalemusser/folio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unrelated", errors.New("connection reset by peer"), false},
		{"illegal operation code", mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"}, true},
		{"code 51", mongo.CommandError{Code: 51}, true},
		{"operation not supported in transaction", mongo.CommandError{Code: 263}, true},
		{"duplicate key code", mongo.CommandError{Code: 11000, Message: "E11000 duplicate key error in transaction"}, false},
		{"wrapped command error", fmt.Errorf("create admin: %w", mongo.CommandError{Code: 20}), true},
		{"standalone message", errors.New("transactions are not supported on a standalone server without a replica set"), true},
		{"single hint only", errors.New("session expired"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := txn.IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRun_WritesOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("admins")
	// Create the collection first; replica sets cannot create it inside a
	// transaction on older servers.
	if err := db.CreateCollection(ctx, "admins"); err != nil {
		t.Fatalf("create collection: %v", err)
	}

	succeeded := 0
	err := txn.Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		if _, err := coll.InsertOne(ctx, bson.M{"email": "admin@example.com"}); err != nil {
			return err
		}
		succeeded++
		return nil
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if succeeded != 1 {
		t.Errorf("successful runs: got %d, want 1", succeeded)
	}

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("documents: got %d, want 1", n)
	}
}

func TestRun_ReturnsFnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	errAlreadySetUp := errors.New("admin already exists")
	calls := 0
	err := txn.Run(ctx, db, zap.NewNop(), func(context.Context) error {
		calls++
		return errAlreadySetUp
	})
	if !errors.Is(err, errAlreadySetUp) {
		t.Errorf("Run error: got %v, want %v", err, errAlreadySetUp)
	}
	if calls != 1 {
		t.Errorf("fn calls: got %d, want 1", calls)
	}
}
