package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a classification of a backend failure.
type Kind string

// Kinds of failures.
const (
	Network    Kind = "network"    // transport-level failure
	Auth       Kind = "auth"       // 401 or 403
	NotFound   Kind = "not_found"  // 404
	Validation Kind = "validation" // missing or undecodable response body
	Server     Kind = "server"     // any other non-2xx status
)

// Error is a failure of the backend call.
type Error struct {
	Kind Kind
	// Status is the HTTP status code, zero for network failures.
	Status int
	// Message is the message from the structured error body, if any.
	Message string
	// Body is the raw (trimmed) error body.
	Body string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case Network:
		return fmt.Sprintf("network error: %v", e.Err)
	case Validation:
		if e.Err != nil {
			return fmt.Sprintf("invalid response: %v", e.Err)
		}
		return "invalid response"
	default:
		return fmt.Sprintf("%s error: status %d: %s", e.Kind, e.Status, e.Detail())
	}
}

// Unwrap allows errors.Is / errors.As to work with wrapped errors.
func (e *Error) Unwrap() error { return e.Err }

// Detail returns the most specific description of the failure:
// structured message, raw body, or the status text.
func (e *Error) Detail() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Body != "":
		return e.Body
	case e.Status != 0:
		return http.StatusText(e.Status)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

// KindOf returns the kind of the remote error, or empty string
// if err is not a remote error.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return ""
}

func kindByStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return Auth
	case http.StatusNotFound:
		return NotFound
	default:
		return Server
	}
}
