package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memAdmins is an in-memory Admins used to test the service without MongoDB.
type memAdmins struct {
	mu     sync.Mutex
	admins []models.Admin
}

func (m *memAdmins) Count(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.admins)), nil
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return models.Admin{}, apierr.NotFound("Admin not found")
}

func (m *memAdmins) GetByID(_ context.Context, id string) (models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.admins {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return models.Admin{}, apierr.NotFound("Admin not found")
}

func (m *memAdmins) Create(_ context.Context, a models.Admin) (models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.admins) > 0 {
		return models.Admin{}, apierr.AlreadyExists("Admin already exists")
	}
	a.ID = primitive.NewObjectID()
	m.admins = append(m.admins, a)
	return a, nil
}

func (m *memAdmins) DeleteAll(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.admins))
	m.admins = nil
	return n, nil
}

func newTestService(resetKey string) *Service {
	return &Service{
		admins:   &memAdmins{},
		tokens:   NewTokens(testSecret),
		resetKey: resetKey,
		cost:     bcrypt.MinCost,
		inTx: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
		log: zap.NewNop(),
	}
}

func TestCreateAdmin_Validation(t *testing.T) {
	svc := newTestService("")
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateAdminInput
		wantMsg string
	}{
		{"missing name", CreateAdminInput{Email: "a@b.co", Password: "password1"}, "All fields required"},
		{"missing email", CreateAdminInput{Password: "password1", Name: "A"}, "All fields required"},
		{"missing password", CreateAdminInput{Email: "a@b.co", Name: "A"}, "All fields required"},
		{"bad email", CreateAdminInput{Email: "nope", Password: "password1", Name: "A"}, "A valid email address is required."},
		{"short password", CreateAdminInput{Email: "a@b.co", Password: "short", Name: "A"}, "Password must be at least 8 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAdmin(ctx, tt.in)
			if !errors.Is(err, apierr.ErrValidation) {
				t.Fatalf("got %v, want validation error", err)
			}
			if got := apierr.Message(err); got != tt.wantMsg {
				t.Errorf("message: got %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestCreateAdmin_Singleton(t *testing.T) {
	svc := newTestService("")
	ctx := context.Background()

	required, _ := svc.SetupRequired(ctx)
	if !required {
		t.Fatal("SetupRequired: got false before any admin exists")
	}

	id, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "Owner@Example.com", Password: "password1", Name: "Owner"})
	if err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}
	if id.Email != "owner@example.com" {
		t.Errorf("Email: got %q, want lowercased", id.Email)
	}

	_, err = svc.CreateAdmin(ctx, CreateAdminInput{Email: "other@example.com", Password: "password2", Name: "Other"})
	if !errors.Is(err, apierr.ErrAlreadyExists) {
		t.Errorf("second CreateAdmin: got %v, want already exists", err)
	}
	if required, _ := svc.SetupRequired(ctx); required {
		t.Error("SetupRequired: got true after setup")
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService("")
	ctx := context.Background()
	created, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "owner@example.com", Password: "correct horse", Name: "Owner"})
	if err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}

	got, err := svc.Authenticate(ctx, "  OWNER@example.com ", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID: got %q, want %q", got.ID, created.ID)
	}

	for _, tc := range []struct{ email, password string }{
		{"owner@example.com", "wrong password"},
		{"stranger@example.com", "correct horse"},
	} {
		_, err := svc.Authenticate(ctx, tc.email, tc.password)
		if !errors.Is(err, apierr.ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q): got %v, want invalid credentials", tc.email, err)
		}
		if msg := apierr.Message(err); msg != "Invalid credentials" {
			t.Errorf("message: got %q", msg)
		}
	}

	if _, err := svc.Authenticate(ctx, "", ""); !errors.Is(err, apierr.ErrValidation) {
		t.Errorf("empty credentials: got %v, want validation error", err)
	}
}

func TestSessionFlow(t *testing.T) {
	svc := newTestService("")
	ctx := context.Background()
	created, _ := svc.CreateAdmin(ctx, CreateAdminInput{Email: "owner@example.com", Password: "password1", Name: "Owner"})

	tok, err := svc.IssueToken(created.ID)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	id, err := svc.ValidateSession(tok.Value)
	if err != nil || id != created.ID {
		t.Fatalf("ValidateSession: got (%q, %v)", id, err)
	}
	who, err := svc.Admin(ctx, id)
	if err != nil || who.Name != "Owner" {
		t.Fatalf("Admin: got (%+v, %v)", who, err)
	}

	// After a reset the token still verifies but names no one.
	svc.resetKey = "k"
	if _, err := svc.ResetAdmin(ctx, "k"); err != nil {
		t.Fatalf("ResetAdmin failed: %v", err)
	}
	if _, err := svc.Admin(ctx, id); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Errorf("Admin after reset: got %v, want unauthorized", err)
	}
}

func TestResetAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without key", func(t *testing.T) {
		svc := newTestService("")
		if _, err := svc.ResetAdmin(ctx, ""); !errors.Is(err, apierr.ErrUnauthorized) {
			t.Errorf("got %v, want unauthorized", err)
		}
		if svc.ResetEnabled() {
			t.Error("ResetEnabled: got true with empty key")
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		svc := newTestService("s3cret")
		if _, err := svc.ResetAdmin(ctx, "guess"); !errors.Is(err, apierr.ErrUnauthorized) {
			t.Errorf("got %v, want unauthorized", err)
		}
	})

	t.Run("correct key deletes admin", func(t *testing.T) {
		svc := newTestService("s3cret")
		if _, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "a@example.com", Password: "password1", Name: "A"}); err != nil {
			t.Fatalf("CreateAdmin failed: %v", err)
		}
		n, err := svc.ResetAdmin(ctx, "s3cret")
		if err != nil {
			t.Fatalf("ResetAdmin failed: %v", err)
		}
		if n != 1 {
			t.Errorf("deletedCount: got %d, want 1", n)
		}
		if required, _ := svc.SetupRequired(ctx); !required {
			t.Error("SetupRequired: got false after reset")
		}
	})
}
