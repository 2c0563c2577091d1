package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/eco-track/internal/handler"
	"github.com/msomdec/eco-track/internal/repository/sqlite"
	"github.com/msomdec/eco-track/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

func newTestServices(t *testing.T) (*service.AuthService, *service.ActionService, *service.DashboardService) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	actions := service.NewActionService(db.Actions())
	return service.NewAuthService(db.Users(), testJWTSecret, 4, time.Hour),
		actions,
		service.NewDashboardService(actions)
}

func newTestServerWithLimiter(t *testing.T, limiter *service.LoginLimiter) *httptest.Server {
	t.Helper()
	auth, actions, dashboard := newTestServices(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, auth, actions, dashboard, limiter, false)

	srv := httptest.NewServer(handler.Chain(mux))
	t.Cleanup(srv.Close)
	return srv
}

func newLimiter(t *testing.T, perMinute float64, burst int) *service.LoginLimiter {
	t.Helper()
	limiter := service.NewLoginLimiter(perMinute, burst)
	t.Cleanup(limiter.Close)
	return limiter
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithLimiter(t, newLimiter(t, 600, 100))
}

// newClient returns a client with its own cookie jar that does not follow redirects.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, u string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func get(t *testing.T, client *http.Client, u string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	defer resp.Body.Close()
	return resp, readBody(t, resp)
}

// signUp registers and logs in through the HTML forms.
func signUp(t *testing.T, client *http.Client, baseURL, email, name string) {
	t.Helper()
	resp := postForm(t, client, baseURL+"/register", url.Values{
		"email":            {email},
		"display_name":     {name},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d", email, resp.StatusCode)
	}

	resp = postForm(t, client, baseURL+"/login", url.Values{
		"email":    {email},
		"password": {"password123"},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login %s: expected 303, got %d", email, resp.StatusCode)
	}
}
