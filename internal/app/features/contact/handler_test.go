package contact_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/folio/internal/app/features/contact"
	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	messagestore "github.com/dalemusser/folio/internal/app/store/messages"
	"github.com/dalemusser/folio/internal/app/system/ratelimit"
	"github.com/dalemusser/folio/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, limit int) (http.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	lim := ratelimit.NewMemory(limit, time.Minute)
	t.Cleanup(lim.Close)
	h := contact.NewHandler(db, lim, httperrors.NewErrorLogger(logger), logger)
	return contact.Routes(h), db
}

func TestSubmit_StoresCleanMessage(t *testing.T) {
	router, db := newTestRouter(t, 10)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", map[string]string{
		"name":    "<b>Grace</b>",
		"email":   " Grace@Example.COM ",
		"subject": "Hello",
		"message": "Loved the <script>alert(1)</script>site & the projects",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var body map[string]string
	testutil.DecodeJSON(t, rec, &body)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	m, err := messagestore.New(db).GetByID(ctx, body["id"])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if m.Name != "Grace" {
		t.Errorf("name: got %q", m.Name)
	}
	if m.Email != "grace@example.com" {
		t.Errorf("email: got %q", m.Email)
	}
	if m.Message != "Loved the site & the projects" {
		t.Errorf("message: got %q", m.Message)
	}
}

func TestSubmit_Validation(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{"missing name", map[string]string{"email": "a@b.co", "message": "hi"}, "name is required."},
		{"bad email", map[string]string{"name": "A", "email": "nope", "message": "hi"}, "A valid email address is required."},
		{"markup only", map[string]string{"name": "A", "email": "a@b.co", "message": "<p></p>"}, "message is required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if got := testutil.ErrorMessage(t, rec); got != tt.want {
				t.Errorf("error: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSubmit_RateLimited(t *testing.T) {
	router, _ := newTestRouter(t, 1)
	body := map[string]string{"name": "A", "email": "a@b.co", "message": "hi"}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first: got %d, want 201", rec.Code)
	}
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, testutil.JSONRequest(t, http.MethodPost, "/", body))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second: got %d, want 429", rec.Code)
	}
}
