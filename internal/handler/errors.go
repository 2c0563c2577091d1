package handler

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msomdec/eco-track/internal/domain"
)

const (
	msgUnexpected     = "An unexpected error occurred. Please try again."
	msgEmailInUse     = "Email address is already in use."
	msgBadCredentials = "Invalid email or password."
	msgBadCategory    = "Please choose a valid category."
)

// userMessage turns a validation error into a sentence fit for a form.
func userMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidCategory) {
		return msgBadCategory
	}
	msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}
