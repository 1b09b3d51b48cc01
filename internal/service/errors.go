package service

import (
	"errors"
)

// Sentinel errors mapped to HTTP statuses by the API layer. Anything else
// coming out of a service is treated as an internal error: logged in full,
// reported to the client generically.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already in use")
	ErrSlugTaken          = errors.New("slug is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
