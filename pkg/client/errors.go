package client

import (
	"errors"
	"fmt"

	"github.com/openjourney/ojp/pkg/bridge"
)

// TransportError covers network and HTTP-level failures; the wrapped error
// carries the underlying cause when one exists.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %s", e.URL, e.Err)
	}

	return fmt.Sprintf("request to %s failed with status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError covers responses that arrive but cannot be parsed
// into any known delivery shape.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// FailureKind is the coarse classification callers surface to users.
type FailureKind string

const (
	FailureNetwork   FailureKind = "network"
	FailureMalformed FailureKind = "malformed"
	FailureNoResults FailureKind = "no-results"
	FailureOther     FailureKind = "other"
)

var ErrNoResults = errors.New("no results")

// ClassifyFailure maps any error from this package into the coarse
// user-visible failure categories.
func ClassifyFailure(err error) FailureKind {
	var transportError *TransportError
	var malformedError *MalformedResponseError

	switch {
	case errors.As(err, &transportError):
		return FailureNetwork
	case errors.As(err, &malformedError), errors.Is(err, bridge.ErrUnknownSchemaVersion):
		return FailureMalformed
	case errors.Is(err, ErrNoResults):
		return FailureNoResults
	}

	return FailureOther
}
