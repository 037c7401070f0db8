package gc

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by package gc. Wrap with fmt.Errorf("...: %w", ...)
// and compare with errors.Is, the same way the rest of this codebase reports
// failures.
var (
	// ErrOutOfMemory is returned when allocating a managed object's cell or
	// growing the handle block pool fails. The collector remains
	// consistent: no slot is published for an object whose allocation
	// failed.
	ErrOutOfMemory = errors.New("gc: out of memory")

	// ErrDeadScope is returned when an operation targets a scope that has
	// already exited, or a handle branded by such a scope. Go has no
	// borrow checker to catch this earlier, so every handle use checks
	// that the handle's scope has not yet exited. Handle.Deref also
	// returns it for a handle whose slot holds no object (one promoted
	// from a nil HeapRef).
	ErrDeadScope = errors.New("gc: scope is no longer active")

	// ErrScopeNotActive is returned when an allocation (or any other
	// operation reserved for the innermost scope) is attempted on a scope
	// that is alive but is not the top-most scope on the stack.
	ErrScopeNotActive = errors.New("gc: scope is not the innermost active scope")

	// ErrDoubleEscape is returned when Escape is called more than once on
	// the same escape context.
	ErrDoubleEscape = errors.New("gc: escape already used")
)

// wrapOOM turns a recovered allocation panic (the only realistic source is
// the Go runtime itself refusing a very large allocation) into a returned
// ErrOutOfMemory, so a caller can handle exhaustion the way spec section 7
// requires instead of crashing.
func wrapOOM(r any) error {
	return fmt.Errorf("%w: %v", ErrOutOfMemory, r)
}
