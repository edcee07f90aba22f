package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 24 * time.Hour

// Token is an issued session token.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Tokens issues and validates HS256 session tokens. The subject is the
// admin id. Tokens are stateless: nothing is stored server-side.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret []byte) *Tokens {
	return &Tokens{secret: secret, ttl: TokenTTL, now: time.Now}
}

// Issue signs a token for adminID.
func (t *Tokens) Issue(adminID string) (Token, error) {
	if adminID == "" {
		return Token{}, errors.New("auth: empty admin id")
	}
	now := t.now()
	exp := now.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   adminID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	// NumericDate drops sub-second precision; report what the token says.
	return Token{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

var errUnauthorized = apierr.Unauthorized("Unauthorized")

// ValidateSession returns the admin id carried by a valid, unexpired token.
// Every failure is reported as apierr.ErrUnauthorized.
func (t *Tokens) ValidateSession(value string) (string, error) {
	if value == "" {
		return "", errUnauthorized
	}
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(value, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !tok.Valid || claims.Subject == "" {
		return "", errUnauthorized
	}
	return claims.Subject, nil
}
