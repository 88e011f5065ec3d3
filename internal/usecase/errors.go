package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrResolutionFailed      = errors.New("stat resolution failed")
	ErrResolutionTimeout     = errors.New("stat resolution timed out")
	ErrStorageUnavailable    = errors.New("stat storage unavailable")
)
