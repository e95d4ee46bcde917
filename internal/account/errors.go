package account

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrMalformedSession   = errors.New("malformed stored session")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthenticated   = errors.New("not signed in")
	ErrQuotaExceeded      = errors.New("generation quota exceeded")
)
