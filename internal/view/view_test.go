package view

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/msomdec/eco-track/internal/domain"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestHomePage_AnonymousShowsSignIn(t *testing.T) {
	body := render(t, HomePage(nil))
	if !strings.Contains(body, `href="/login"`) {
		t.Error("expected sign-in link for anonymous visitor")
	}
	if strings.Contains(body, `action="/logout"`) {
		t.Error("did not expect logout form for anonymous visitor")
	}
}

func TestHomePage_SignedInShowsNav(t *testing.T) {
	body := render(t, HomePage(&Nav{DisplayName: "Ada"}))
	if !strings.Contains(body, "Ada") {
		t.Error("expected display name in nav")
	}
	if !strings.Contains(body, `action="/logout"`) {
		t.Error("expected logout form")
	}
}

func TestLoginPage_EscapesInput(t *testing.T) {
	body := render(t, LoginPage(AuthForm{Email: `"><script>x</script>`, Error: "Invalid email or password."}))
	if strings.Contains(body, "<script>x</script>") {
		t.Error("form value was not escaped")
	}
	if !strings.Contains(body, "Invalid email or password.") {
		t.Error("expected error message")
	}
}

func TestActionListPage(t *testing.T) {
	actions := []domain.Action{
		{ID: 7, Category: domain.CategoryCycling, Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Note: "to work", Points: 15},
	}
	body := render(t, ActionListPage(&Nav{DisplayName: "Ada"}, actions, 15))

	for _, want := range []string{
		`id="action-7"`,
		"2024-03-04",
		"Cycling",
		`href="/actions/7/edit"`,
		`action="/actions/7/delete"`,
		`<span id="actions-total">15</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestActionFormPage_SelectsCategory(t *testing.T) {
	body := render(t, ActionFormPage(nil, ActionForm{ID: 3, Category: string(domain.CategoryRecycling)}))
	if !strings.Contains(body, `<option value="recycling" selected>`) {
		t.Error("expected recycling to be selected")
	}
	if !strings.Contains(body, `action="/actions/3"`) {
		t.Error("expected edit form to post to the action URL")
	}
}

func TestDashboardStats_Fragment(t *testing.T) {
	summary := domain.Summary{
		TotalPoints:      120,
		Tier:             domain.TierGold,
		PointsToNextTier: 80,
		ActionCount:      4,
		Weeks:            []domain.WeekPoints{{Week: "2024-05", Points: 120}},
	}
	body := render(t, DashboardStats(summary))

	if !strings.HasPrefix(body, `<section id="dashboard-stats">`) {
		t.Errorf("fragment should start with the patch target, got %.40q", body)
	}
	for _, want := range []string{"120", "Gold", "tier-gold", "80 points to the next tier", "2024-05", "<svg"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in fragment", want)
		}
	}
	if strings.Contains(body, "<html") {
		t.Error("fragment must not include the layout")
	}
}

func TestDashboardStats_Empty(t *testing.T) {
	body := render(t, DashboardStats(domain.Summary{Tier: domain.TierBronze, PointsToNextTier: 50}))
	if strings.Contains(body, "<svg") {
		t.Error("expected no chart without weeks")
	}
	if !strings.Contains(body, "No actions logged yet") {
		t.Error("expected empty-state message")
	}
}

func TestProfilePage(t *testing.T) {
	u := &domain.User{Email: "ada@example.com", DisplayName: "Ada"}
	body := render(t, ProfilePage(u, "Ada L", "/static/a.png", true, ""))
	for _, want := range []string{"ada@example.com", `value="Ada L"`, "Profile saved."} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestDashboardPage_WrapsStatsInLayout(t *testing.T) {
	body := render(t, DashboardPage(&Nav{DisplayName: "Ada"}, domain.Summary{Tier: domain.TierBronze, PointsToNextTier: 50}))

	if !strings.HasPrefix(body, "<!doctype html>") {
		t.Errorf("expected a full document, got %.40q", body)
	}
	for _, want := range []string{
		"<title>Dashboard &middot; EcoTrack</title>",
		"<main><h1>Dashboard</h1>",
		`data-on-interval__duration.30s="@get('/dashboard/stats')"`,
		`<section id="dashboard-stats">`,
		"</section></div></main>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body", want)
		}
	}
}

func TestActionRowID_MatchesRenderedRow(t *testing.T) {
	actions := []domain.Action{{ID: 9, Category: domain.CategoryOther, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	body := render(t, ActionListPage(nil, actions, 0))

	if !strings.Contains(body, `<tr id="`+ActionRowID(9)+`">`) {
		t.Errorf("expected row with id %q", ActionRowID(9))
	}
	if !strings.Contains(body, `data-on:click__prevent="@delete(&#39;/actions/9&#39;)"`) {
		t.Error("expected datastar delete binding on the row")
	}
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	err := ProfilePage(&domain.User{Email: "a@example.com"}, "A", "", false, "").Render(ctx, &sb)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sb.Len() != 0 {
		t.Errorf("expected no output, got %q", sb.String())
	}
}
