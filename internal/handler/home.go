package handler

import (
	"net/http"

	"github.com/msomdec/eco-track/internal/view"
)

// HandleHome renders the home page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	renderPage(w, r, http.StatusOK, view.HomePage(view.NavFor(UserFromContext(r.Context()))))
}
