package storeutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseID(t *testing.T) {
	if _, err := ParseID("507f1f77bcf86cd799439011", "Project"); err != nil {
		t.Errorf("valid id: unexpected error %v", err)
	}
	for _, bad := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseID(bad, "Project")
		if !errors.Is(err, ErrMalformedID) {
			t.Errorf("ParseID(%q): got %v, want ErrMalformedID", bad, err)
		}
		if apierr.IsDomain(err) {
			t.Errorf("ParseID(%q): %v must not carry a domain kind", bad, err)
		}
	}
}

func TestTranslate(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no documents", mongo.ErrNoDocuments, apierr.ErrNotFound},
		{"wrapped no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), apierr.ErrNotFound},
		{"duplicate key", mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, apierr.ErrAlreadyExists},
		{"other", boom, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in, "Skill")
			if tt.want == nil {
				if got != nil {
					t.Errorf("got %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate_Message(t *testing.T) {
	got := apierr.Message(Translate(mongo.ErrNoDocuments, "Project"))
	if got != "Project not found" {
		t.Errorf("message: got %q, want %q", got, "Project not found")
	}
}
