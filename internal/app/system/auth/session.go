package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const tokenKey = "token"

// SessionValidator resolves a session token to the admin id it names.
// Both *Tokens and *Service satisfy it.
type SessionValidator interface {
	ValidateSession(token string) (string, error)
}

// SessionManager carries session tokens to and from HTTP requests. Clients
// send a token either as `Authorization: Bearer <token>` or inside the
// signed session cookie set at sign-in.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	tokens SessionValidator
	log    *zap.Logger
}

// NewSessionManager builds the cookie store. secure marks cookies Secure
// with SameSite=None for cross-site HTTPS use; otherwise SameSite=Lax so
// http://localhost works in dev.
func NewSessionManager(sessionKey, name, domain string, secure bool, tokens SessionValidator, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide 32+ random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(TokenTTL.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, tokens: tokens, log: logger}, nil
}

// SetCookie stores tok in the session cookie.
func (m *SessionManager) SetCookie(w http.ResponseWriter, r *http.Request, tok Token) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[tokenKey] = tok.Value
	return sess.Save(r, w)
}

// ClearCookie expires the session cookie. The token itself stays valid
// until it expires.
func (m *SessionManager) ClearCookie(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// tokenFrom returns the bearer token, falling back to the cookie.
func (m *SessionManager) tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, value, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(value)
		}
		return ""
	}
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return ""
	}
	v, _ := sess.Values[tokenKey].(string)
	return v
}

// LoadSession puts the admin id of a valid token into the request
// context. Requests without a valid token pass through unchanged.
func (m *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := m.tokenFrom(r); tok != "" {
			if id, err := m.tokens.ValidateSession(tok); err == nil {
				r = WithAdmin(r, id)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without an admin in context with 401.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AdminID(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey string

const adminIDKey ctxKey = "adminID"

// AdminID returns the signed-in admin id, if any.
func AdminID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok && id != ""
}

// WithAdmin returns r carrying adminID as the signed-in admin.
func WithAdmin(r *http.Request, adminID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), adminIDKey, adminID))
}
