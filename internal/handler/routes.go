package handler

import (
	"net/http"

	"github.com/msomdec/eco-track/internal/metrics"
	"github.com/msomdec/eco-track/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	actions *service.ActionService,
	dashboard *service.DashboardService,
	limiter *service.LoginLimiter,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	actionHandler := NewActionHandler(actions)
	dashboardHandler := NewDashboardHandler(dashboard)
	profileHandler := NewProfileHandler(auth)

	page := func(h http.HandlerFunc) http.Handler { return RequireLogin(auth, h) }
	api := func(h http.HandlerFunc) http.Handler { return RequireAuth(auth, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /", OptionalAuth(auth, http.HandlerFunc(HandleHome)))

	// Auth pages.
	mux.Handle("GET /register", OptionalAuth(auth, http.HandlerFunc(authHandler.HandleRegisterPage)))
	mux.HandleFunc("POST /register", authHandler.HandleRegisterSubmit)
	mux.Handle("GET /login", OptionalAuth(auth, http.HandlerFunc(authHandler.HandleLoginPage)))
	mux.Handle("POST /login", RateLimitLogin(limiter, http.HandlerFunc(authHandler.HandleLoginSubmit)))
	mux.HandleFunc("POST /logout", authHandler.HandleLogoutSubmit)

	// Dashboard.
	mux.Handle("GET /dashboard", page(dashboardHandler.HandleDashboard))
	mux.Handle("GET /dashboard/stats", page(dashboardHandler.HandleStats))

	// Actions.
	mux.Handle("GET /actions", page(actionHandler.HandleList))
	mux.Handle("GET /actions/new", page(actionHandler.HandleNew))
	mux.Handle("POST /actions", page(actionHandler.HandleCreate))
	mux.Handle("GET /actions/{id}/edit", page(actionHandler.HandleEdit))
	mux.Handle("POST /actions/{id}", page(actionHandler.HandleUpdate))
	mux.Handle("POST /actions/{id}/delete", page(actionHandler.HandleDeleteSubmit))
	mux.Handle("DELETE /actions/{id}", page(actionHandler.HandleDelete))

	// Profile.
	mux.Handle("GET /profile", page(profileHandler.HandleProfile))
	mux.Handle("POST /profile", page(profileHandler.HandleProfileUpdate))

	// JSON API.
	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.Handle("POST /api/auth/login", RateLimitLogin(limiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", api(authHandler.HandleMe))
	mux.Handle("GET /api/actions", api(actionHandler.HandleAPIList))
	mux.Handle("POST /api/actions", api(actionHandler.HandleAPICreate))
	mux.Handle("PUT /api/actions/{id}", api(actionHandler.HandleAPIUpdate))
	mux.Handle("DELETE /api/actions/{id}", api(actionHandler.HandleAPIDelete))
	mux.Handle("GET /api/dashboard", api(dashboardHandler.HandleAPIDashboard))
}

// Chain wraps h in the standard middleware stack, outermost first.
func Chain(h http.Handler) http.Handler {
	return RequestID(LogRequests(metrics.Instrument(SecurityHeaders(h))))
}
