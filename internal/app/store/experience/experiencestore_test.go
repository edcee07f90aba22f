package experiencestore_test

import (
	"errors"
	"testing"
	"time"

	experiencestore "github.com/dalemusser/folio/internal/app/store/experience"
	"github.com/dalemusser/folio/internal/app/system/apierr"
	"github.com/dalemusser/folio/internal/domain/models"
	"github.com/dalemusser/folio/internal/testutil"
)

func date(y int, m time.Month) time.Time { return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC) }

func TestStore_ListOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := experiencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, e := range []models.Experience{
		{Company: "Old", Position: "p", Description: "d", StartDate: date(2018, 1), Order: 0},
		{Company: "New", Position: "p", Description: "d", StartDate: date(2022, 6), Order: 0},
		{Company: "Pinned", Position: "p", Description: "d", StartDate: date(2010, 1), Order: -1},
	} {
		if _, err := store.Create(ctx, e); err != nil {
			t.Fatalf("Create %s: %v", e.Company, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"Pinned", "New", "Old"}
	for i, w := range want {
		if list[i].Company != w {
			t.Errorf("List[%d]: got %q, want %q", i, list[i].Company, w)
		}
	}
}

func TestStore_CurrentDropsEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := experiencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	end := date(2021, 3)
	e, err := store.Create(ctx, models.Experience{
		Company: "Acme", Position: "Engineer", Description: "d",
		StartDate: date(2019, 1), EndDate: &end,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if e.EndDate == nil || !e.EndDate.Equal(end) {
		t.Fatalf("EndDate: got %v, want %v", e.EndDate, end)
	}

	current := true
	got, err := store.Update(ctx, e.ID.Hex(), experiencestore.Update{Current: &current})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !got.Current || got.EndDate != nil {
		t.Errorf("after current=true: current=%v endDate=%v, want true/nil", got.Current, got.EndDate)
	}

	// An end date sent together with current=true is ignored.
	got, err = store.Update(ctx, e.ID.Hex(), experiencestore.Update{EndDate: &end, Current: &current})
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if got.EndDate != nil {
		t.Errorf("EndDate: got %v, want nil while current", got.EndDate)
	}
}

func TestStore_ClearEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := experiencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	end := date(2021, 3)
	e, err := store.Create(ctx, models.Experience{Company: "Acme", Position: "p", Description: "d", StartDate: date(2019, 1), EndDate: &end})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := store.Update(ctx, e.ID.Hex(), experiencestore.Update{ClearEndDate: true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got.EndDate != nil {
		t.Errorf("EndDate: got %v, want nil", got.EndDate)
	}
	if got.Company != "Acme" {
		t.Errorf("Company changed: %q", got.Company)
	}
}

func TestStore_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := experiencestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, "507f1f77bcf86cd799439011"); !errors.Is(err, apierr.ErrNotFound) {
		t.Errorf("GetByID: got %v, want not found", err)
	}
	if err := store.Delete(ctx, "bad"); !errors.Is(err, apierr.ErrNotFound) {
		t.Errorf("Delete: got %v, want not found", err)
	}
}
