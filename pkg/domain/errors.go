package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a feed, article or filter id is unknown
var ErrNotFound = errors.New("not found")

// ErrDuplicateFeed is returned when adding a feed whose URL is already registered
var ErrDuplicateFeed = errors.New("feed already exists")

// FetchErrorKind classifies feed retrieval failures
type FetchErrorKind string

const (
	FetchConnRefused  FetchErrorKind = "connection-refused"
	FetchTimeout      FetchErrorKind = "timeout"
	FetchNotFound     FetchErrorKind = "http-404"
	FetchForbidden    FetchErrorKind = "http-403"
	FetchUnauthorized FetchErrorKind = "http-401"
	FetchHTTPStatus   FetchErrorKind = "http-status"
	FetchNetwork      FetchErrorKind = "network"
)

// FetchError is a classified network or HTTP failure. It is retryable by the caller.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int   // set for http kinds
	Err        error // underlying cause, not shown to users
}

// Error returns a human readable message for the failure kind
func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchConnRefused:
		return "couldn't reach that site (check the URL)"
	case FetchTimeout:
		return "that site took too long to respond"
	case FetchNotFound:
		return "nothing found at that URL (404)"
	case FetchForbidden:
		return "that site blocked the request (403)"
	case FetchUnauthorized:
		return "that feed requires a login (401)"
	case FetchHTTPStatus:
		return fmt.Sprintf("that site returned an error (%d)", e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("couldn't fetch: %v", e.Err)
		}
		return "couldn't fetch that URL"
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the fetched document is not a usable feed
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "that URL doesn't contain a valid RSS/Atom feed"
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is a user-correctable input problem
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError makes a ValidationError for the field
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// UserMessage returns a message suitable for showing to the user.
// Classified errors keep their own text, anything else is reported generically.
func UserMessage(err error) string {
	var fetchErr *FetchError
	var parseErr *ParseError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fetchErr):
		return fetchErr.Error()
	case errors.As(err, &parseErr):
		return parseErr.Error()
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.Is(err, ErrDuplicateFeed):
		return ErrDuplicateFeed.Error()
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	default:
		return "something went wrong"
	}
}
