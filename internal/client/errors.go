package client

import (
	"context"
	"errors"
	"fmt"
)

// ErrFetch is the single error kind for a page that could not be loaded.
var ErrFetch = errors.New("page fetch failed")

// FailureKind classifies why a fetch failed.
type FailureKind string

// Failure kinds.
const (
	KindTransport FailureKind = "transport"
	KindStatus    FailureKind = "status"
	KindDecode    FailureKind = "decode"
)

// FetchError describes a failed page fetch. It matches ErrFetch with errors.Is
// and unwraps to its cause.
type FetchError struct {
	Page       int
	Kind       FailureKind
	StatusCode int
	RequestID  string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("fetch page %d: unexpected status %d", e.Page, e.StatusCode)
	default:
		return fmt.Sprintf("fetch page %d: %s: %v", e.Page, e.Kind, e.Err)
	}
}

// Unwrap exposes both ErrFetch and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetch}
	}
	return []error{ErrFetch, e.Err}
}

// IsCanceled reports whether err stems from a canceled context, which happens
// when a newer page request supersedes this one.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
