package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/service"
	"github.com/msomdec/eco-track/internal/view"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.TokenTTL().Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// HandleLoginPage renders the login form. Signed-in users go straight to the dashboard.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	var form view.AuthForm
	if r.URL.Query().Get("registered") == "1" {
		form.Notice = "Account created. Please sign in."
	}
	renderPage(w, r, http.StatusOK, view.LoginPage(form))
}

// HandleLoginSubmit processes the login form.
func (h *AuthHandler) HandleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	token, _, err := h.auth.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			renderPage(w, r, http.StatusUnauthorized, view.LoginPage(view.AuthForm{Email: email, Error: msgBadCredentials}))
			return
		}
		slog.Error("login user", "error", err)
		renderPage(w, r, http.StatusInternalServerError, view.LoginPage(view.AuthForm{Email: email, Error: msgUnexpected}))
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// HandleRegisterPage renders the registration form. Signed-in users go straight to the dashboard.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderPage(w, r, http.StatusOK, view.RegisterPage(view.AuthForm{}))
}

// HandleRegisterSubmit processes the registration form.
func (h *AuthHandler) HandleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	form := view.AuthForm{
		Email:       r.FormValue("email"),
		DisplayName: r.FormValue("display_name"),
	}

	_, err := h.auth.Register(r.Context(), form.Email, form.DisplayName, r.FormValue("password"), r.FormValue("confirm_password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			form.Error = msgEmailInUse
			renderPage(w, r, http.StatusConflict, view.RegisterPage(form))
		case errors.Is(err, domain.ErrInvalidInput):
			form.Error = userMessage(err)
			renderPage(w, r, http.StatusUnprocessableEntity, view.RegisterPage(form))
		default:
			slog.Error("register user", "error", err)
			form.Error = msgUnexpected
			renderPage(w, r, http.StatusInternalServerError, view.RegisterPage(form))
		}
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

// HandleLogoutSubmit clears the auth cookie and returns to the home page.
func (h *AuthHandler) HandleLogoutSubmit(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogin processes a JSON login request.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, msgBadCredentials)
			return
		}
		slog.Error("login user", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	h.setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleRegister processes a JSON registration request.
// POST /api/auth/register
// Request:  {"email":"...","displayName":"...","password":"...","confirmPassword":"..."}
// Response: {"user": {...}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string `json:"email"`
		DisplayName     string `json:"displayName"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, msgEmailInUse)
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, userMessage(err))
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user": toUserDTO(user),
	})
}

// HandleLogout clears the auth cookie.
// POST /api/auth/logout
// Response: 204 No Content
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the currently authenticated user.
// GET /api/auth/me
// Response: {"user": {...}} or 401
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": toUserDTO(user),
	})
}
