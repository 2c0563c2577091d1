// Package view renders EcoTrack pages and fragments as templ components.
//
// Markup lives in the .templ files next to this one. Run `templ generate`
// after editing them to refresh the *_templ.go files.
package view

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/msomdec/eco-track/internal/domain"
)

// Nav is the signed-in state shown in the navigation bar.
type Nav struct {
	DisplayName string
	AvatarURL   string
}

// NavFor builds the navigation state for u, which may be nil.
func NavFor(u *domain.User) *Nav {
	if u == nil {
		return nil
	}
	return &Nav{DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}

// AuthForm holds values echoed back into the login and register forms.
type AuthForm struct {
	Email       string
	DisplayName string
	Error       string
	Notice      string
}

// ActionForm holds the values of the add/edit action form.
type ActionForm struct {
	ID       int64 // 0 when creating
	Category string
	Date     string
	Note     string
	Points   string
	Error    string
}

func (f ActionForm) title() string {
	if f.ID != 0 {
		return "Edit action"
	}
	return "Log an action"
}

func (f ActionForm) submitURL() templ.SafeURL {
	if f.ID != 0 {
		return templ.SafeURL(actionPath(f.ID))
	}
	return "/actions"
}

// ActionRowID is the DOM id of an action's table row.
func ActionRowID(id int64) string {
	return "action-" + strconv.FormatInt(id, 10)
}

func actionPath(id int64) string {
	return "/actions/" + strconv.FormatInt(id, 10)
}

func tierClass(t domain.Tier) string {
	return "tier-" + strings.ToLower(string(t))
}
