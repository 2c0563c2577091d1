package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCategory = errors.New("invalid category")
)
