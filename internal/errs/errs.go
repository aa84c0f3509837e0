package errs

import (
	"errors"
	"fmt"
)

// Kinds of failure the orchestrator turns into a fallback step.
var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedResponse   = errors.New("malformed response")
	ErrIO                  = errors.New("local state i/o")
)

type Error struct {
	Kind error
	Op   string
	Err  error
}

// Wrap tags err with one of the kinds above. A nil err still yields an error
// so callers can report a kind without an underlying cause.
func Wrap(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrapf is Wrap with a formatted cause.
func Wrapf(kind error, op, format string, a ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, a...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

// KindOf returns the kind carried by err, or nil when err has none.
func KindOf(err error) error {
	for _, k := range []error{ErrUpstreamUnavailable, ErrMalformedResponse, ErrIO} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
