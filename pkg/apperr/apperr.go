// Package apperr defines the stable error kinds shared by every bounded context.
//
// Each context declares its own sentinels with New, and callers match either the
// sentinel or its kind:
//
//	errors.Is(err, catalogdomain.ErrItemNotFound) // exact sentinel
//	errors.Is(err, apperr.NotFound)               // any not-found error
package apperr

import "errors"

// Kind classifies an error for transport mapping. A Kind is itself an error so
// it can be used as an errors.Is target.
type Kind string

const (
	NotFound        Kind = "not_found"
	NotOwner        Kind = "not_owner"
	InvalidInput    Kind = "invalid_input"
	Conflict        Kind = "conflict"
	Upstream        Kind = "upstream_failure"
	Unauthenticated Kind = "unauthenticated"
)

func (k Kind) Error() string { return string(k) }

// Error is a sentinel carrying a Kind and a client-safe message.
type Error struct {
	kind Kind
	msg  string
}

// New returns a sentinel error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Is reports a match against the sentinel itself or against its Kind.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return k == e.kind
	}
	return e == target
}

// KindOf returns the Kind of the first *Error or Kind in err's chain, or ""
// when err is unclassified.
func KindOf(err error) Kind {
	var c interface{ Kind() Kind }
	if errors.As(err, &c) {
		return c.Kind()
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}

// Wrap classifies a collaborator failure, keeping the cause in the chain.
//
//	return apperr.Wrap(apperr.Upstream, "send activation email", err)
func Wrap(kind Kind, msg string, cause error) error {
	return &wrapped{kind: kind, msg: msg, cause: cause}
}

type wrapped struct {
	kind  Kind
	msg   string
	cause error
}

func (w *wrapped) Error() string { return w.msg + ": " + w.cause.Error() }
func (w *wrapped) Unwrap() error { return w.cause }
func (w *wrapped) Kind() Kind    { return w.kind }
func (w *wrapped) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == w.kind
}
