package service_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/service"
)

func act(t *testing.T, date string, points int) domain.Action {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		t.Fatalf("parse %q: %v", date, err)
	}
	return domain.Action{Category: domain.CategoryCycling, Date: d, Points: points}
}

func weekKeys(weeks []domain.WeekPoints) []string {
	keys := make([]string, len(weeks))
	for i, w := range weeks {
		keys[i] = w.Week
	}
	return keys
}

func TestTotalPoints(t *testing.T) {
	if got := service.TotalPoints(nil); got != 0 {
		t.Errorf("TotalPoints(nil) = %d, want 0", got)
	}
	if got := service.TotalPoints([]domain.Action{}); got != 0 {
		t.Errorf("TotalPoints(empty) = %d, want 0", got)
	}
	got := service.TotalPoints([]domain.Action{
		act(t, "2024-01-01", 10),
		act(t, "2023-06-15", 0),
		act(t, "2024-03-01", 26),
	})
	if got != 36 {
		t.Errorf("TotalPoints = %d, want 36", got)
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		total int
		want  domain.Tier
	}{
		{0, domain.TierBronze},
		{49, domain.TierBronze},
		{50, domain.TierSilver},
		{99, domain.TierSilver},
		{100, domain.TierGold},
		{199, domain.TierGold},
		{200, domain.TierPlatinum},
		{10_000, domain.TierPlatinum},
	}
	for _, tc := range tests {
		if got := service.TierFor(tc.total); got != tc.want {
			t.Errorf("TierFor(%d) = %v, want %v", tc.total, got, tc.want)
		}
	}
}

func TestTierFor_Monotonic(t *testing.T) {
	rank := map[domain.Tier]int{
		domain.TierBronze: 0, domain.TierSilver: 1, domain.TierGold: 2, domain.TierPlatinum: 3,
	}
	prev := rank[service.TierFor(0)]
	for total := 1; total <= 300; total++ {
		cur := rank[service.TierFor(total)]
		if cur < prev {
			t.Fatalf("tier dropped at total %d", total)
		}
		prev = cur
	}
}

func TestPointsToNextTier(t *testing.T) {
	tests := []struct{ total, want int }{
		{0, 50},
		{49, 1},
		{50, 50},
		{199, 1},
		{200, 0},
	}
	for _, tc := range tests {
		if got := service.PointsToNextTier(tc.total); got != tc.want {
			t.Errorf("PointsToNextTier(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestPointsByWeek_SameISOWeek(t *testing.T) {
	// 2024-01-01 is a Monday and 2024-01-07 the following Sunday.
	weeks := service.PointsByWeek([]domain.Action{
		act(t, "2024-01-01", 10),
		act(t, "2024-01-07", 5),
	})

	if len(weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(weeks))
	}
	if weeks[0].Week != "2024-01" || weeks[0].Points != 15 {
		t.Fatalf("got %+v, want 2024-01 with 15 points", weeks[0])
	}
}

func TestPointsByWeek_AdjacentWeeks(t *testing.T) {
	weeks := service.PointsByWeek([]domain.Action{
		act(t, "2024-01-08", 5),
		act(t, "2024-01-01", 10),
	})

	want := []domain.WeekPoints{
		{Week: "2024-01", Year: 2024, Number: 1, Points: 10},
		{Week: "2024-02", Year: 2024, Number: 2, Points: 5},
	}
	if !slices.Equal(weeks, want) {
		t.Fatalf("got %+v, want %+v", weeks, want)
	}
}

func TestPointsByWeek_MonthBoundary(t *testing.T) {
	// Monday 2024-01-29 through Sunday 2024-02-04 is ISO week 5.
	weeks := service.PointsByWeek([]domain.Action{
		act(t, "2024-01-29", 3),
		act(t, "2024-02-04", 4),
	})

	if len(weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(weeks))
	}
	if weeks[0].Week != "2024-05" || weeks[0].Points != 7 {
		t.Fatalf("got %+v, want 2024-05 with 7 points", weeks[0])
	}
}

func TestPointsByWeek_YearBoundary(t *testing.T) {
	weeks := service.PointsByWeek([]domain.Action{
		act(t, "2025-01-06", 1),  // 2025-W02
		act(t, "2024-12-30", 2),  // Monday, belongs to 2025-W01
		act(t, "2021-01-03", 4),  // Sunday, belongs to 2020-W53
		act(t, "2020-12-31", 8),  // 2020-W53
		act(t, "2021-01-04", 16), // 2021-W01
	})

	want := []string{"2020-53", "2021-01", "2025-01", "2025-02"}
	if got := weekKeys(weeks); !slices.Equal(got, want) {
		t.Fatalf("week keys = %v, want %v", got, want)
	}
	if weeks[0].Points != 12 {
		t.Fatalf("2020-53 points = %d, want 12", weeks[0].Points)
	}
}

func TestPointsByWeek_OrderedAcrossDecades(t *testing.T) {
	weeks := service.PointsByWeek([]domain.Action{
		act(t, "2031-03-03", 1),
		act(t, "2009-03-02", 1),
		act(t, "2019-03-04", 1),
	})

	if len(weeks) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(weeks))
	}
	for i := 1; i < len(weeks); i++ {
		if weeks[i-1].Year >= weeks[i].Year {
			t.Fatalf("weeks out of order: %v", weekKeys(weeks))
		}
	}
}

func TestPointsByWeek_Empty(t *testing.T) {
	if weeks := service.PointsByWeek(nil); len(weeks) != 0 {
		t.Fatalf("expected no weeks, got %+v", weeks)
	}
}

func TestSummarize(t *testing.T) {
	s := service.Summarize([]domain.Action{
		act(t, "2024-01-01", 10),
		act(t, "2024-01-07", 5),
	})

	if s.TotalPoints != 15 {
		t.Errorf("TotalPoints = %d, want 15", s.TotalPoints)
	}
	if s.Tier != domain.TierBronze {
		t.Errorf("Tier = %v, want %v", s.Tier, domain.TierBronze)
	}
	if s.PointsToNextTier != 35 {
		t.Errorf("PointsToNextTier = %d, want 35", s.PointsToNextTier)
	}
	if s.ActionCount != 2 {
		t.Errorf("ActionCount = %d, want 2", s.ActionCount)
	}
	if got := weekKeys(s.Weeks); !slices.Equal(got, []string{"2024-01"}) {
		t.Errorf("weeks = %v, want [2024-01]", got)
	}
}

func TestDashboardService_Summary(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	actions := service.NewActionService(db.Actions())
	dash := service.NewDashboardService(actions)
	ctx := context.Background()

	for _, in := range []service.ActionInput{
		{Category: "cycling", Date: "2024-01-01", Points: 60},
		{Category: "tree-planting", Date: "2024-01-10", Points: 45},
	} {
		if _, err := actions.Create(ctx, alice.ID, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if _, err := actions.Create(ctx, bob.ID, service.ActionInput{Category: "other", Date: "2024-01-01", Points: 500}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := dash.Summary(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.TotalPoints != 105 {
		t.Errorf("TotalPoints = %d, want 105", s.TotalPoints)
	}
	if s.Tier != domain.TierGold {
		t.Errorf("Tier = %v, want %v", s.Tier, domain.TierGold)
	}
	if got := weekKeys(s.Weeks); !slices.Equal(got, []string{"2024-01", "2024-02"}) {
		t.Errorf("weeks = %v, want [2024-01 2024-02]", got)
	}

	empty, err := dash.Summary(ctx, createTestUser(t, db, "new@example.com").ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if empty.TotalPoints != 0 || empty.Tier != domain.TierBronze || len(empty.Weeks) != 0 {
		t.Errorf("empty summary = %+v, want zero total, bronze tier and no weeks", empty)
	}
}
