// Package storeutil holds the id parsing and error translation shared by
// the collection stores.
package storeutil

import (
	"errors"
	"fmt"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrMalformedID marks an id that is not a 24-digit hex ObjectID. It is
// not a domain kind, so the HTTP boundary logs it and answers 500.
var ErrMalformedID = errors.New("malformed id")

// ParseID converts a hex id.
func ParseID(hex, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s id %q", ErrMalformedID, what, hex)
	}
	return oid, nil
}

// Translate maps driver errors onto apierr kinds. Other errors pass through.
func Translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apierr.NotFound("%s not found", what)
	case wafflemongo.IsDup(err):
		return apierr.AlreadyExists("%s already exists", what)
	default:
		return err
	}
}
