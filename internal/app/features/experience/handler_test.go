package experience_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httperrors "github.com/dalemusser/folio/internal/app/features/errors"
	"github.com/dalemusser/folio/internal/app/features/experience"
	"github.com/dalemusser/folio/internal/domain/models"
	"github.com/dalemusser/folio/internal/testutil"
	"go.uber.org/zap"
)

const adminID = "64b7f0c2a1b2c3d4e5f60718"

func newTestRouter(t *testing.T) (http.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := experience.NewHandler(db, httperrors.NewErrorLogger(logger), logger)
	return experience.Routes(h), testutil.NewFixtures(t, db)
}

func serve(router http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestCreate_CurrentDropsEndDate(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", map[string]any{
		"company":     "Acme",
		"position":    "Engineer",
		"description": "Built rockets",
		"startDate":   "2020-01-01",
		"endDate":     "2021-01-01",
		"current":     true,
	}), adminID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	var e models.Experience
	testutil.DecodeJSON(t, rec, &e)
	if e.EndDate != nil {
		t.Errorf("endDate: got %v, want absent for a current position", e.EndDate)
	}
	if !e.StartDate.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("startDate: got %v", e.StartDate)
	}
}

func TestCreate_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	base := func() map[string]any {
		return map[string]any{
			"company": "Acme", "position": "Engineer", "description": "D", "startDate": "2020-01-01",
		}
	}
	tests := []struct {
		name  string
		patch map[string]any
		want  string
	}{
		{"missing company", map[string]any{"company": ""}, "company is required."},
		{"missing start", map[string]any{"startDate": ""}, "startDate is required."},
		{"bad start", map[string]any{"startDate": "yesterday"}, "startDate must be a date (YYYY-MM-DD or RFC 3339)."},
		{"end before start", map[string]any{"endDate": "2019-01-01"}, "endDate must not be before startDate."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			for k, v := range tt.patch {
				body[k] = v
			}
			rec := serve(router, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPost, "/", body), adminID))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rec.Code)
			}
			if got := testutil.ErrorMessage(t, rec); got != tt.want {
				t.Errorf("error: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdate_EndDate(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := fx.CreateExperience(ctx, "Acme", time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC))
	path := "/" + e.ID.Hex()

	rec := serve(router, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPut, path,
		map[string]any{"endDate": "2019-06-30"}), adminID))
	var got models.Experience
	testutil.DecodeJSON(t, rec, &got)
	if got.EndDate == nil || got.EndDate.Format("2006-01-02") != "2019-06-30" {
		t.Fatalf("endDate after set: got %v", got.EndDate)
	}

	rec = serve(router, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPut, path, `{"endDate": null}`), adminID))
	got = models.Experience{}
	testutil.DecodeJSON(t, rec, &got)
	if got.EndDate != nil {
		t.Errorf("endDate after null: got %v, want absent", got.EndDate)
	}
	if got.Company != "Acme" {
		t.Errorf("company changed: %q", got.Company)
	}
}

func TestUpdate_SingleDateKeepsRange(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	e := fx.CreateExperience(ctx, "Acme", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	path := "/" + e.ID.Hex()

	rec := serve(router, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPut, path,
		map[string]any{"endDate": "2021-01-01"}), adminID))
	if rec.Code != http.StatusOK {
		t.Fatalf("set endDate: got %d, body %s", rec.Code, rec.Body.String())
	}

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"end before stored start", map[string]any{"endDate": "2019-01-01"}, http.StatusBadRequest},
		{"start after stored end", map[string]any{"startDate": "2022-01-01"}, http.StatusBadRequest},
		{"start before stored end", map[string]any{"startDate": "2019-06-01"}, http.StatusOK},
		{"current skips range", map[string]any{"current": true, "startDate": "2023-01-01"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, testutil.WithAdmin(testutil.JSONRequest(t, http.MethodPut, path, tt.body), adminID))
			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d, body %s", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusBadRequest {
				if got := testutil.ErrorMessage(t, rec); got != "endDate must not be before startDate." {
					t.Errorf("error: got %q", got)
				}
			}
		})
	}
}

func TestList_OrderThenStartDesc(t *testing.T) {
	router, fx := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateExperience(ctx, "Older", time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
	fx.CreateExperience(ctx, "Newer", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	var list []models.Experience
	testutil.DecodeJSON(t, rec, &list)
	if len(list) != 2 || list[0].Company != "Newer" {
		t.Errorf("order: got %+v", list)
	}
}

func TestDelete_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(router, testutil.WithAdmin(httptest.NewRequest(http.MethodDelete, "/nope", nil), adminID))
	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
