package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/service"
	"github.com/msomdec/eco-track/internal/view"
)

// ProfileHandler handles the profile page.
type ProfileHandler struct {
	auth *service.AuthService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

// HandleProfile renders the profile form.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	saved := r.URL.Query().Get("saved") == "1"
	renderPage(w, r, http.StatusOK, view.ProfilePage(user, user.DisplayName, user.AvatarURL, saved, ""))
}

// HandleProfileUpdate saves the display name and avatar.
func (h *ProfileHandler) HandleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	displayName := r.FormValue("display_name")
	avatarURL := r.FormValue("avatar_url")

	if _, err := h.auth.UpdateProfile(r.Context(), user.ID, displayName, avatarURL); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			renderPage(w, r, http.StatusUnprocessableEntity, view.ProfilePage(user, displayName, avatarURL, false, userMessage(err)))
			return
		}
		slog.Error("update profile", "error", err)
		renderPage(w, r, http.StatusInternalServerError, view.ProfilePage(user, displayName, avatarURL, false, msgUnexpected))
		return
	}

	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}
