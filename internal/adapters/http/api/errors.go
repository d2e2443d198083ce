package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/museumguide/internal/adapters/museum"
)

// Sentinel kinds for API errors.
var (
	ErrMissingTitle     = errors.New("missing " + paintingFact)
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrLookup           = errors.New("lookup failed")
)

// lookupCauses are the only causes a failed lookup reports in-band. Anything
// else, including upstream bodies and request URLs, stays in the logs.
var lookupCauses = []error{
	museum.ErrNotFound,
	museum.ErrInvalidID,
	museum.ErrUpstream,
	museum.ErrDecode,
	context.DeadlineExceeded,
	context.Canceled,
}

// Error ties a failure to the handler operation and error kind that produced it.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Kind != nil && e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
	}
	return e.Op + ": " + e.Message()
}

// Message is the text shown to the dialogue engine, without the operation.
// Request errors show only their kind and lookup errors their museum sentinel;
// the full cause is kept for logs.
func (e *Error) Message() string {
	switch {
	case e.Kind == nil && e.Err == nil:
		return "unknown error"
	case e.Kind == nil:
		return e.Err.Error()
	case e.Err == nil, e.Kind == ErrMissingTitle, e.Kind == ErrMethodNotAllowed:
		return e.Kind.Error()
	case e.Kind == ErrLookup:
		for _, cause := range lookupCauses {
			if errors.Is(e.Err, cause) {
				return fmt.Sprintf("%s: %s", e.Kind, cause)
			}
		}
		return e.Kind.Error()
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// WrapKind labels err with op and classifies it as kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewKind returns an error of kind with no further cause.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// message returns the in-band text for err.
func message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
