package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/eco-track/internal/service"
	"github.com/msomdec/eco-track/internal/view"
	datastar "github.com/starfederation/datastar-go/datastar"
)

// DashboardHandler handles the dashboard page, its live fragment and JSON.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// HandleDashboard renders the dashboard page with total points, tier and the weekly breakdown.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), user.ID)
	if err != nil {
		slog.Error("build dashboard summary", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, view.DashboardPage(view.NavFor(user), summary))
}

// HandleStats re-renders the stats block via SSE.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), user.ID)
	if err != nil {
		slog.Error("refresh dashboard stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.DashboardStats(summary),
		datastar.WithSelectorID("dashboard-stats"),
	)
}

// HandleAPIDashboard returns the dashboard figures.
// GET /api/dashboard
// Response: {"totalPoints":0,"tier":"Bronze","actionCount":0,"pointsToNextTier":50,"weeks":[]}
func (h *DashboardHandler) HandleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	summary, err := h.dashboard.Summary(r.Context(), user.ID)
	if err != nil {
		slog.Error("build dashboard summary", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	writeJSON(w, http.StatusOK, toDashboardDTO(summary))
}
