package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/repository/sqlite"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func newAction(t *testing.T, repo *sqlite.ActionRepository, userID int64, date string, points int) *domain.Action {
	t.Helper()
	a := &domain.Action{
		UserID:   userID,
		Category: domain.CategoryCycling,
		Date:     mustDate(t, date),
		Note:     "note " + date,
		Points:   points,
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func TestActionRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db.Users(), "owner@example.com")
	repo := db.Actions()
	ctx := context.Background()

	a := &domain.Action{
		UserID:   owner.ID,
		Category: domain.CategoryTreePlanting,
		Date:     mustDate(t, "2024-03-15"),
		Note:     "Planted an oak",
		Points:   25,
	}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}

	got, err := repo.GetByID(ctx, owner.ID, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Category != domain.CategoryTreePlanting || got.Note != "Planted an oak" || got.Points != 25 {
		t.Fatalf("unexpected action: %+v", got)
	}
	if !got.Date.Equal(a.Date) {
		t.Fatalf("expected date %s, got %s", a.Date, got.Date)
	}
}

func TestActionRepository_GetByID_OtherOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db.Users(), "alice@example.com")
	bob := createUser(t, db.Users(), "bob@example.com")
	repo := db.Actions()

	a := newAction(t, repo, alice.ID, "2024-01-01", 10)

	_, err := repo.GetByID(context.Background(), bob.ID, a.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign action, got %v", err)
	}
}

func TestActionRepository_ListByUser_Order(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db.Users(), "list@example.com")
	other := createUser(t, db.Users(), "other@example.com")
	repo := db.Actions()

	first := newAction(t, repo, owner.ID, "2024-01-05", 1)
	newest := newAction(t, repo, owner.ID, "2024-02-01", 2)
	sameDay := newAction(t, repo, owner.ID, "2024-01-05", 3)
	newAction(t, repo, other.ID, "2024-03-01", 99)

	actions, err := repo.ListByUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}

	want := []int64{newest.ID, sameDay.ID, first.ID}
	if len(actions) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(actions))
	}
	for i, id := range want {
		if actions[i].ID != id {
			t.Fatalf("position %d: expected id %d, got %d", i, id, actions[i].ID)
		}
	}
}

func TestActionRepository_ListByUser_Empty(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db.Users(), "empty@example.com")

	actions, err := db.Actions().ListByUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %d", len(actions))
	}
}

func TestActionRepository_Update(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db.Users(), "update@example.com")
	repo := db.Actions()
	ctx := context.Background()

	a := newAction(t, repo, owner.ID, "2024-01-01", 10)
	a.Category = domain.CategoryRecycling
	a.Date = mustDate(t, "2024-01-02")
	a.Note = "changed"
	a.Points = 7

	if err := repo.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, owner.ID, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Category != domain.CategoryRecycling || got.Note != "changed" || got.Points != 7 {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Date.Format(domain.DateLayout) != "2024-01-02" {
		t.Fatalf("expected date 2024-01-02, got %s", got.Date.Format(domain.DateLayout))
	}
}

func TestActionRepository_Update_OtherOwner(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db.Users(), "alice@example.com")
	bob := createUser(t, db.Users(), "bob@example.com")
	repo := db.Actions()
	ctx := context.Background()

	a := newAction(t, repo, alice.ID, "2024-01-01", 10)

	hijack := *a
	hijack.UserID = bob.ID
	hijack.Points = 500
	if err := repo.Update(ctx, &hijack); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := repo.GetByID(ctx, alice.ID, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Points != 10 {
		t.Fatalf("foreign update must not change the record, points=%d", got.Points)
	}
}

func TestActionRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db.Users(), "alice@example.com")
	bob := createUser(t, db.Users(), "bob@example.com")
	repo := db.Actions()
	ctx := context.Background()

	a := newAction(t, repo, alice.ID, "2024-01-01", 10)

	deleted, err := repo.Delete(ctx, bob.ID, a.ID)
	if err != nil {
		t.Fatalf("Delete by other owner: %v", err)
	}
	if deleted {
		t.Fatal("another owner must not be able to delete the action")
	}

	deleted, err = repo.Delete(ctx, alice.ID, a.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected owner delete to remove the row")
	}

	deleted, err = repo.Delete(ctx, alice.ID, a.ID)
	if err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	if deleted {
		t.Fatal("deleting a missing action must report false")
	}
}
