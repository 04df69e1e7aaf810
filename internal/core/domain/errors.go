package domain

import "errors"

var (
	ErrRecordNotFound     = errors.New("session record not found")
	ErrMalformedRecord    = errors.New("malformed session record")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrValidation         = errors.New("validation failed")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
)
