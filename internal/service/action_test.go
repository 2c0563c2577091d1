package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/repository/sqlite"
	"github.com/msomdec/eco-track/internal/service"
)

func newTestActionService(t *testing.T) (*service.ActionService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewActionService(db.Actions()), db
}

func createTestUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, DisplayName: email, PasswordHash: "x", Roles: []string{domain.RoleUser}}
	if err := db.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestActionService_CreateThenList(t *testing.T) {
	svc, db := newTestActionService(t)
	owner := createTestUser(t, db, "owner@example.com")
	ctx := context.Background()

	created, err := svc.Create(ctx, owner.ID, service.ActionInput{
		Category: "public-transport",
		Date:     "2024-05-06",
		Note:     "Took the tram",
		Points:   12,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a fresh identifier")
	}

	actions, err := svc.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	got := actions[0]
	if got.ID != created.ID ||
		got.Category != domain.CategoryPublicTransport ||
		got.Date.Format(domain.DateLayout) != "2024-05-06" ||
		got.Note != "Took the tram" ||
		got.Points != 12 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestActionService_Create_Validation(t *testing.T) {
	svc, db := newTestActionService(t)
	owner := createTestUser(t, db, "v@example.com")
	ctx := context.Background()

	valid := service.ActionInput{Category: "cycling", Date: "2024-01-01", Points: 5}

	tests := []struct {
		name    string
		mutate  func(in *service.ActionInput)
		wantErr error
	}{
		{"unknown category", func(in *service.ActionInput) { in.Category = "flying" }, domain.ErrInvalidCategory},
		{"uppercase category", func(in *service.ActionInput) { in.Category = "CYCLING" }, domain.ErrInvalidCategory},
		{"empty category", func(in *service.ActionInput) { in.Category = "" }, domain.ErrInvalidCategory},
		{"bad date", func(in *service.ActionInput) { in.Date = "01/02/2024" }, domain.ErrInvalidInput},
		{"impossible date", func(in *service.ActionInput) { in.Date = "2024-02-30" }, domain.ErrInvalidInput},
		{"negative points", func(in *service.ActionInput) { in.Points = -1 }, domain.ErrInvalidInput},
		{"too many points", func(in *service.ActionInput) { in.Points = domain.MaxPoints + 1 }, domain.ErrInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.Create(ctx, owner.ID, in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	actions, err := svc.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("rejected writes must not persist, found %d actions", len(actions))
	}
}

func TestActionService_Create_ZeroPointsAllowed(t *testing.T) {
	svc, db := newTestActionService(t)
	owner := createTestUser(t, db, "zero@example.com")

	if _, err := svc.Create(context.Background(), owner.ID, service.ActionInput{
		Category: "other", Date: "2024-01-01", Points: 0,
	}); err != nil {
		t.Fatalf("Create with zero points: %v", err)
	}
}

func TestActionService_Create_NoteLengthCountsCharacters(t *testing.T) {
	svc, db := newTestActionService(t)
	owner := createTestUser(t, db, "note@example.com")
	ctx := context.Background()

	// 1000 two-byte characters fit; one more does not.
	in := service.ActionInput{Category: "other", Date: "2024-01-01", Points: 1, Note: strings.Repeat("é", 1000)}
	a, err := svc.Create(ctx, owner.ID, in)
	if err != nil {
		t.Fatalf("Create with 1000-character note: %v", err)
	}
	if a.Note != in.Note {
		t.Fatalf("note not stored intact")
	}

	in.Note = strings.Repeat("é", 1001)
	if _, err := svc.Create(ctx, owner.ID, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 1001-character note, got %v", err)
	}
}

func TestActionService_Update(t *testing.T) {
	svc, db := newTestActionService(t)
	owner := createTestUser(t, db, "upd@example.com")
	ctx := context.Background()

	a, err := svc.Create(ctx, owner.ID, service.ActionInput{Category: "cycling", Date: "2024-01-01", Note: "old", Points: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, owner.ID, a.ID, service.ActionInput{Category: "recycling", Date: "2024-01-03", Note: "", Points: 8})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Category != domain.CategoryRecycling || updated.Note != "" || updated.Points != 8 ||
		updated.Date.Format(domain.DateLayout) != "2024-01-03" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestActionService_Update_OtherOwnerIsNotFound(t *testing.T) {
	svc, db := newTestActionService(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()

	a, err := svc.Create(ctx, alice.ID, service.ActionInput{Category: "cycling", Date: "2024-01-01", Points: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, bob.ID, a.ID, service.ActionInput{Category: "other", Date: "2024-01-01", Points: 999})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	got, err := svc.Get(ctx, alice.ID, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Points != 5 || got.Category != domain.CategoryCycling {
		t.Fatalf("record changed by another owner: %+v", got)
	}

	if _, err := svc.Get(ctx, bob.ID, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign Get, got %v", err)
	}
}

func TestActionService_Update_InvalidInputBeforeLookup(t *testing.T) {
	svc, db := newTestActionService(t)
	owner := createTestUser(t, db, "inv@example.com")

	_, err := svc.Update(context.Background(), owner.ID, 12345, service.ActionInput{Category: "nope", Date: "2024-01-01"})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestActionService_Delete(t *testing.T) {
	svc, db := newTestActionService(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	ctx := context.Background()

	a, err := svc.Create(ctx, alice.ID, service.ActionInput{Category: "cycling", Date: "2024-01-01", Points: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another owner's delete is a silent no-op.
	if err := svc.Delete(ctx, bob.ID, a.ID); err != nil {
		t.Fatalf("foreign Delete: %v", err)
	}
	if _, err := svc.Get(ctx, alice.ID, a.ID); err != nil {
		t.Fatalf("action should survive a foreign delete: %v", err)
	}

	if err := svc.Delete(ctx, alice.ID, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, alice.ID, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a non-existent identifier is not an error.
	if err := svc.Delete(ctx, alice.ID, a.ID); err != nil {
		t.Fatalf("Delete of missing action: %v", err)
	}
}
