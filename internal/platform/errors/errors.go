package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNotConfigured   = errors.New("api base url is not configured")
	ErrUploadActive    = errors.New("an upload job is already active")
	ErrNoValidFiles    = errors.New("no valid files selected")
	ErrMissingCategory = errors.New("category is required")
)
