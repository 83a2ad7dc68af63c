// Package synlerr collects the sentinel error values spec.md §7
// requires the core to distinguish, shared across lang, forest, doc,
// and layout so callers can test with errors.Is regardless of which
// package raised the error — mirroring the teacher's plain sentinel
// errors (e.g. buffer.go's bounds checks) rather than a custom
// error-code type.
package synlerr

import "errors"

var (
	// ErrArityViolation: an edit would break the arity of the host
	// construct.
	ErrArityViolation = errors.New("arity violation")
	// ErrSortMismatch: a child's sort is disallowed in this position.
	ErrSortMismatch = errors.New("sort mismatch")
	// ErrMissingNotation: a notation set lacks a construct.
	ErrMissingNotation = errors.New("missing notation")
	// ErrDuplicateKey: two constructs claim the same keyboard shortcut.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrDuplicateConstruct: a construct name is already registered.
	ErrDuplicateConstruct = errors.New("duplicate construct")
	// ErrDuplicateSort: a sort name is already registered.
	ErrDuplicateSort = errors.New("duplicate sort")
	// ErrDuplicateConstructAndSort: both the construct name and its
	// sort collide with an existing registration.
	ErrDuplicateConstructAndSort = errors.New("duplicate construct and sort")
	// ErrUndefinedConstructOrSort: a reference names a construct or
	// sort the registry does not have.
	ErrUndefinedConstructOrSort = errors.New("undefined construct or sort")
	// ErrAtEdge: navigation attempted past a boundary; non-fatal.
	ErrAtEdge = errors.New("at edge")
	// ErrLayoutInfeasible: no formatting fits and the overflow policy
	// could not recover.
	ErrLayoutInfeasible = errors.New("layout infeasible")
	// ErrOrphan: attempted to insert a child that already has a
	// parent.
	ErrOrphan = errors.New("node already has a parent")
	// ErrCycleDetected: a move would make a node its own ancestor.
	ErrCycleDetected = errors.New("cycle detected")
)
