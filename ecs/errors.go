package ecs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies the ways a caller can misuse the storage API.
type Kind int

const (
	// InvalidID means a non-positive entity id was passed where a valid
	// entity was required.
	InvalidID Kind = iota
	// NotPresent means an id was looked up, removed, or dereferenced that
	// is not a member of the set/store.
	NotPresent
	// Empty means an operation that requires at least one element (PopLast)
	// was called on an empty set.
	Empty
	// ParentMissing means GroupedStore.Set was called with a parent entity
	// that is not present in the store.
	ParentMissing
	// IteratorInvalidated means a storage was mutated while an iterator
	// derived from it was still live; only raised by debug builds.
	IteratorInvalidated
)

func (k Kind) String() string {
	switch k {
	case InvalidID:
		return "invalid id"
	case NotPresent:
		return "not present"
	case Empty:
		return "empty"
	case ParentMissing:
		return "parent missing"
	case IteratorInvalidated:
		return "iterator invalidated"
	default:
		return "unknown"
	}
}

// Error is the error type returned across the storage/join API boundary.
// It carries a Kind so callers can branch with errors.Is/errors.As, and a
// stack trace (via github.com/pkg/errors) captured at the point of origin.
type Error struct {
	kind  Kind
	cause error
}

// New builds an Error of the given kind with a formatted message. The
// underlying cause is created with errors.Errorf so it carries a stack
// trace from the call site.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, cause: errors.Errorf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Unwrap exposes the underlying stack-carrying error to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error of the same Kind. ParentMissing
// also matches NotPresent: spec.md lists it as its own kind but describes
// it as "surfaced as NotPresent-kind error", so callers checking either
// errors.Is(err, New(NotPresent, ...)) or the ParentMissing kind both see
// a GroupedStore parent-missing failure.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.kind == e.kind {
		return true
	}
	if e.kind == ParentMissing && other.kind == NotPresent {
		return true
	}
	if other.kind == ParentMissing && e.kind == NotPresent {
		return true
	}
	return false
}

// Panic builds an Error and panics with it. Used at call sites that want
// the panicking NotPresent variant spec'd alongside the fallible one.
func Panic(kind Kind, format string, args ...interface{}) {
	panic(New(kind, format, args...))
}

// IsKind reports whether err is an *Error carrying the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}
