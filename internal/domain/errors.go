package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNoResults indicates the backend found nothing for a query
	ErrNoResults = errors.New("no movies found")

	// ErrServerOffline indicates the backend is unreachable or failing
	ErrServerOffline = errors.New("movie backend is unreachable")

	// ErrDetailUnavailable indicates a detail lookup came back empty
	ErrDetailUnavailable = errors.New("movie details unavailable")

	// ErrMissingIdentifier indicates an item has no resolvable id
	ErrMissingIdentifier = errors.New("item is missing an identifier")
)

// UserError pairs an underlying error with the message shown to the user.
type UserError struct {
	Message string
	Err     error
}

// Error returns the display message
func (e *UserError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying error to errors.Is / errors.As
func (e *UserError) Unwrap() error {
	return e.Err
}

// UserMessage returns the display message carried by err, or fallback if
// err does not carry one.
func UserMessage(err error, fallback string) string {
	var ue *UserError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}
