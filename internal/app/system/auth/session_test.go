package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/folio/internal/app/system/auth"
	"go.uber.org/zap"
)

const testKey = "test-session-key-must-be-32-chars-long"

func newTestSessionManager(t *testing.T) (*auth.SessionManager, *auth.Tokens) {
	t.Helper()
	tokens := auth.NewTokens([]byte(testKey))
	sm, err := auth.NewSessionManager(testKey, "test-session", "", false, tokens, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm, tokens
}

// echoAdmin writes the admin id found in context, or 204 when none.
var echoAdmin = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.AdminID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_, _ = w.Write([]byte(id))
})

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", false, auth.NewTokens(nil), zap.NewNop()); err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestRequireAdmin_NoSession_Returns401JSON(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	h := sm.LoadSession(auth.RequireAdmin(echoAdmin))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestLoadSession_BearerToken(t *testing.T) {
	sm, tokens := newTestSessionManager(t)
	tok, err := tokens.Issue("admin-123")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	h := sm.LoadSession(auth.RequireAdmin(echoAdmin))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "admin-123" {
		t.Errorf("got (%d, %q), want (200, admin-123)", rec.Code, rec.Body.String())
	}
}

func TestLoadSession_InvalidBearerIgnored(t *testing.T) {
	sm, _ := newTestSessionManager(t)
	h := sm.LoadSession(echoAdmin)

	for _, hdr := range []string{"Bearer nope", "Basic dXNlcjpwYXNz", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", hdr)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("Authorization %q: got status %d, want no admin", hdr, rec.Code)
		}
	}
}

func TestSessionCookie_RoundTrip(t *testing.T) {
	sm, tokens := newTestSessionManager(t)
	tok, _ := tokens.Issue("admin-456")

	// Sign in: set the cookie.
	rec := httptest.NewRecorder()
	if err := sm.SetCookie(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), tok); err != nil {
		t.Fatalf("SetCookie failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "test-session" || !cookies[0].HttpOnly {
		t.Fatalf("cookies: got %+v", cookies)
	}

	// Next request presents the cookie.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	sm.LoadSession(echoAdmin).ServeHTTP(rec, req)
	if rec.Body.String() != "admin-456" {
		t.Errorf("admin from cookie: got %q, want admin-456", rec.Body.String())
	}

	// Sign out expires it.
	rec = httptest.NewRecorder()
	if err := sm.ClearCookie(rec, req); err != nil {
		t.Fatalf("ClearCookie failed: %v", err)
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("cleared cookie: got %+v, want MaxAge < 0", cleared)
	}
}
