package helipad

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports bad or missing caller input. It is always returned
// before any request is sent.
type ValidationError struct {
	Op  string
	Msg string
	Err error
}

func (e *ValidationError) Error() string {
	if e.Op == "" {
		return "helipad: " + e.Msg
	}
	return fmt.Sprintf("helipad: %s: %s", e.Op, e.Msg)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError reports a failed POST. StatusCode is zero when the request
// never produced a response, in which case Err holds the cause.
type TransportError struct {
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("helipad: post %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("helipad: post %s: status %d %s", e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not well-formed XML or does not
// have the shape the operation expects.
type ParseError struct {
	Op  string
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("helipad: %s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("helipad: %s: %s", e.Op, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a TransportError for a 404 response, which
// the service returns for ids that do not exist.
func IsNotFound(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.StatusCode == http.StatusNotFound
}
