package prediction

import (
	"errors"
	"fmt"
)

var (
	ErrNotEntitled    = errors.New("subscription does not include predictions")
	ErrBudgetExceeded = errors.New("daily refresh budget exhausted")
)

// ProviderError is a failed refinement call: non-2xx status, timeout or transport error.
// StatusCode is 0 when no response was received.
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider returned %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider call failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError means the provider answered but the body was not a usable suggestion array.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse suggestions: %s: %v", e.Reason, e.Err)
	}
	return "parse suggestions: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }
