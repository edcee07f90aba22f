package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"

	adminstore "github.com/dalemusser/folio/internal/app/store/admins"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/app/system/inputval"
	"github.com/dalemusser/folio/internal/app/system/normalize"
	"github.com/dalemusser/folio/internal/app/system/txn"
	"github.com/dalemusser/folio/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength applies to the admin password at setup.
const MinPasswordLength = 8

// Identity is the public view of the signed-in admin.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func identityOf(a models.Admin) Identity {
	return Identity{ID: a.ID.Hex(), Email: a.Email, Name: a.Name}
}

// Admins is the subset of the admin store the service needs.
type Admins interface {
	Count(ctx context.Context) (int64, error)
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	GetByID(ctx context.Context, id string) (models.Admin, error)
	Create(ctx context.Context, a models.Admin) (models.Admin, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Service owns the admin account lifecycle and credential checks.
type Service struct {
	admins   Admins
	tokens   *Tokens
	resetKey string
	cost     int
	inTx     func(ctx context.Context, fn func(ctx context.Context) error) error
	log      *zap.Logger
}

// NewService wires the service to the admins collection. An empty
// resetKey disables ResetAdmin.
func NewService(db *mongo.Database, tokens *Tokens, resetKey string, log *zap.Logger) *Service {
	return &Service{
		admins:   adminstore.New(db),
		tokens:   tokens,
		resetKey: resetKey,
		cost:     bcrypt.DefaultCost,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return txn.Run(ctx, db, log, fn)
		},
		log: log,
	}
}

var errInvalidCredentials = &apierr.Error{Kind: apierr.ErrInvalidCredentials, Message: "Invalid credentials"}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummy is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
func dummy() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("folio-dummy-password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// Authenticate checks credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Identity, error) {
	email = normalize.Email(email)
	if email == "" || password == "" {
		return Identity{}, apierr.Validation("Email and password are required")
	}

	a, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, apierr.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummy(), []byte(password))
		return Identity{}, errInvalidCredentials
	}
	if err != nil {
		return Identity{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Identity{}, errInvalidCredentials
	}
	return identityOf(a), nil
}

// IssueToken signs a session token for the admin.
func (s *Service) IssueToken(adminID string) (Token, error) {
	return s.tokens.Issue(adminID)
}

// ValidateSession returns the admin id behind a token.
func (s *Service) ValidateSession(token string) (string, error) {
	return s.tokens.ValidateSession(token)
}

// Admin loads the identity for a validated admin id. A token whose admin
// was reset away no longer names anyone and is reported as unauthorized.
func (s *Service) Admin(ctx context.Context, adminID string) (Identity, error) {
	a, err := s.admins.GetByID(ctx, adminID)
	if errors.Is(err, apierr.ErrNotFound) {
		return Identity{}, errUnauthorized
	}
	if err != nil {
		return Identity{}, err
	}
	return identityOf(a), nil
}

// SetupRequired reports whether no admin exists yet.
func (s *Service) SetupRequired(ctx context.Context) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// CreateAdminInput is the setup payload.
type CreateAdminInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// CreateAdmin creates the single admin account.
func (s *Service) CreateAdmin(ctx context.Context, in CreateAdminInput) (Identity, error) {
	in.Email = normalize.Email(in.Email)
	in.Name = normalize.Name(in.Name)
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return Identity{}, apierr.Validation("All fields required")
	}
	if !inputval.IsValidEmail(in.Email) {
		return Identity{}, apierr.Validation("A valid email address is required.")
	}
	if len(in.Password) < MinPasswordLength {
		return Identity{}, apierr.Validation("Password must be at least %d characters.", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Identity{}, err
	}

	var created models.Admin
	err = s.inTx(ctx, func(ctx context.Context) error {
		n, err := s.admins.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return apierr.AlreadyExists("Admin already exists")
		}
		created, err = s.admins.Create(ctx, models.Admin{
			Email:        in.Email,
			Name:         in.Name,
			PasswordHash: string(hash),
		})
		return err
	})
	if err != nil {
		return Identity{}, err
	}
	return identityOf(created), nil
}

// ResetEnabled reports whether a reset key is configured.
func (s *Service) ResetEnabled() bool { return s.resetKey != "" }

// ResetAdmin deletes every admin when key matches the configured reset key.
func (s *Service) ResetAdmin(ctx context.Context, key string) (int64, error) {
	if s.resetKey == "" {
		return 0, apierr.Unauthorized("Reset is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(key)), []byte(s.resetKey)) != 1 {
		return 0, apierr.Unauthorized("Invalid reset key")
	}
	return s.admins.DeleteAll(ctx)
}
