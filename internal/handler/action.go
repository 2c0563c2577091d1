package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/msomdec/eco-track/internal/domain"
	"github.com/msomdec/eco-track/internal/service"
	"github.com/msomdec/eco-track/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

var errPointsNotInteger = errors.New("points must be a whole number")

// ActionHandler handles eco action pages and the actions JSON API.
type ActionHandler struct {
	actions *service.ActionService
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(actions *service.ActionService) *ActionHandler {
	return &ActionHandler{actions: actions}
}

// HandleList renders the signed-in user's actions.
func (h *ActionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actions, err := h.actions.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list actions", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, view.ActionListPage(view.NavFor(user), actions, service.TotalPoints(actions)))
}

// HandleNew renders an empty action form dated today.
func (h *ActionHandler) HandleNew(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	form := view.ActionForm{
		Category: string(domain.CategoryCycling),
		Date:     time.Now().Format(domain.DateLayout),
		Points:   "10",
	}
	renderPage(w, r, http.StatusOK, view.ActionFormPage(view.NavFor(user), form))
}

// HandleCreate processes the new action form.
func (h *ActionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	form := actionFormFromRequest(r)
	in, err := parseActionForm(form)
	if err != nil {
		form.Error = userMessage(err)
		renderPage(w, r, http.StatusUnprocessableEntity, view.ActionFormPage(view.NavFor(user), form))
		return
	}

	if _, err := h.actions.Create(r.Context(), user.ID, in); err != nil {
		h.renderFormError(w, r, user, form, err, "create action")
		return
	}

	http.Redirect(w, r, "/actions", http.StatusSeeOther)
}

// HandleEdit renders the edit form for one of the user's actions. Unknown or
// foreign IDs go back to the list.
func (h *ActionHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	action, err := h.actions.Get(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/actions", http.StatusSeeOther)
			return
		}
		slog.Error("get action", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	form := view.ActionForm{
		ID:       action.ID,
		Category: string(action.Category),
		Date:     action.Date.Format(domain.DateLayout),
		Note:     action.Note,
		Points:   strconv.Itoa(action.Points),
	}
	renderPage(w, r, http.StatusOK, view.ActionFormPage(view.NavFor(user), form))
}

// HandleUpdate processes the edit form.
func (h *ActionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	form := actionFormFromRequest(r)
	form.ID = id
	in, err := parseActionForm(form)
	if err != nil {
		form.Error = userMessage(err)
		renderPage(w, r, http.StatusUnprocessableEntity, view.ActionFormPage(view.NavFor(user), form))
		return
	}

	if _, err := h.actions.Update(r.Context(), user.ID, id, in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Redirect(w, r, "/actions", http.StatusSeeOther)
			return
		}
		h.renderFormError(w, r, user, form, err, "update action")
		return
	}

	http.Redirect(w, r, "/actions", http.StatusSeeOther)
}

// HandleDeleteSubmit deletes an action from the no-script form fallback.
func (h *ActionHandler) HandleDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.actions.Delete(r.Context(), user.ID, id); err != nil {
		slog.Error("delete action", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/actions", http.StatusSeeOther)
}

// HandleDelete deletes an action via datastar and returns an SSE response
// that removes its row and refreshes the total.
func (h *ActionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.actions.Delete(r.Context(), user.ID, id); err != nil {
		slog.Error("delete action", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	actions, err := h.actions.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list actions after delete", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	sse.RemoveElementByID(view.ActionRowID(id))
	sse.PatchElementTempl(
		view.ActionsTotal(service.TotalPoints(actions)),
		datastar.WithSelectorID("actions-total"),
	)
}

func (h *ActionHandler) renderFormError(w http.ResponseWriter, r *http.Request, user *domain.User, form view.ActionForm, err error, op string) {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrInvalidCategory) {
		form.Error = userMessage(err)
		renderPage(w, r, http.StatusUnprocessableEntity, view.ActionFormPage(view.NavFor(user), form))
		return
	}
	slog.Error(op, "error", err)
	form.Error = msgUnexpected
	renderPage(w, r, http.StatusInternalServerError, view.ActionFormPage(view.NavFor(user), form))
}

func actionFormFromRequest(r *http.Request) view.ActionForm {
	return view.ActionForm{
		Category: r.FormValue("category"),
		Date:     r.FormValue("date"),
		Note:     r.FormValue("note"),
		Points:   r.FormValue("points"),
	}
}

// parseActionForm converts the raw form into service input. Only the points
// field needs parsing here; everything else is validated by the service.
func parseActionForm(form view.ActionForm) (service.ActionInput, error) {
	points, err := strconv.Atoi(strings.TrimSpace(form.Points))
	if err != nil {
		return service.ActionInput{}, errPointsNotInteger
	}
	return service.ActionInput{
		Category: form.Category,
		Date:     form.Date,
		Note:     form.Note,
		Points:   points,
	}, nil
}

type actionRequest struct {
	Category string `json:"category"`
	Date     string `json:"date"`
	Note     string `json:"note"`
	Points   int    `json:"points"`
}

func (req actionRequest) input() service.ActionInput {
	return service.ActionInput{
		Category: req.Category,
		Date:     req.Date,
		Note:     req.Note,
		Points:   req.Points,
	}
}

// HandleAPIList returns the user's actions.
// GET /api/actions
// Response: {"actions": [...]}
func (h *ActionHandler) HandleAPIList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	actions, err := h.actions.List(r.Context(), user.ID)
	if err != nil {
		slog.Error("list actions", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"actions": toActionDTOs(actions),
	})
}

// HandleAPICreate logs a new action.
// POST /api/actions
// Request:  {"category":"...","date":"YYYY-MM-DD","note":"...","points":10}
// Response: 201 {"action": {...}}
func (h *ActionHandler) HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req actionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	action, err := h.actions.Create(r.Context(), user.ID, req.input())
	if err != nil {
		writeActionError(w, err, "create action")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"action": toActionDTO(action),
	})
}

// HandleAPIUpdate replaces one of the user's actions.
// PUT /api/actions/{id}
// Response: {"action": {...}} or 404
func (h *ActionHandler) HandleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid action ID.")
		return
	}

	var req actionRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	action, err := h.actions.Update(r.Context(), user.ID, id, req.input())
	if err != nil {
		writeActionError(w, err, "update action")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"action": toActionDTO(action),
	})
}

// HandleAPIDelete deletes one of the user's actions.
// DELETE /api/actions/{id}
// Response: 204 No Content, also for unknown IDs
func (h *ActionHandler) HandleAPIDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid action ID.")
		return
	}

	if err := h.actions.Delete(r.Context(), user.ID, id); err != nil {
		slog.Error("delete action", "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeActionError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Action not found.")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidCategory):
		writeError(w, http.StatusUnprocessableEntity, userMessage(err))
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, msgUnexpected)
	}
}
