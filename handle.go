package gc

import "unsafe"

// Handle is a rooted reference: a slot pointer paired with the scope brand
// it was allocated in. Two handles to the same slot are equivalent.
// Copying a Handle is trivial and transfers no ownership.
//
// Go has no invariant generative lifetimes, so the brand here is a runtime
// check rather than a compile-time one: every Deref and ToHeap call
// confirms the owning scope is still alive before following the slot. See
// the scope-brand design note in SPEC_FULL.md for why this is the faithful
// translation of the original design onto a language without borrow
// checking.
type Handle[T any] struct {
	slot  *unsafe.Pointer
	scope *Scope
}

// Deref follows the handle's slot to the current object pointer and then
// to the payload. The returned pointer is valid for at most the life of
// the handle's scope.
func (h Handle[T]) Deref() (*T, error) {
	if h.scope == nil || !h.scope.alive {
		return nil, ErrDeadScope
	}
	hdr := (*header)(*h.slot)
	if hdr == nil {
		return nil, ErrDeadScope
	}
	return (*T)(hdr.payload), nil
}

// ToHeap demotes the handle to a HeapRef, discarding the scope brand. The
// result is storable inside another managed object's payload.
func (h Handle[T]) ToHeap() (HeapRef[T], error) {
	if h.scope == nil || !h.scope.alive {
		return HeapRef[T]{}, ErrDeadScope
	}
	return HeapRef[T]{h: (*header)(*h.slot)}, nil
}

// IsValid reports whether the handle's owning scope is still active. It
// does not allocate and never returns an error.
func (h Handle[T]) IsValid() bool {
	return h.scope != nil && h.scope.alive
}

// Alloc places value on the heap, runs a collection first (subject to the
// collector's configured threshold), and returns a handle rooted in s. s
// must be the collector's innermost active scope.
func Alloc[T any, PT TracerPtr[T]](s *Scope, value T) (Handle[T], error) {
	if s == nil || !s.alive {
		return Handle[T]{}, ErrDeadScope
	}
	c := s.gc
	if c.top() != s {
		return Handle[T]{}, ErrScopeNotActive
	}

	c.maybeCollect()

	hdr, err := newCell[T, PT](value)
	if err != nil {
		return Handle[T]{}, err
	}

	idx, err := c.pushSlot(unsafe.Pointer(hdr))
	if err != nil {
		return Handle[T]{}, err
	}
	slot := c.pool.SlotPtr(idx)

	hdr.next = c.allHead
	c.allHead = hdr
	c.totalAllocs++
	c.liveCount++

	c.logAlloc(hdr)

	return Handle[T]{slot: slot, scope: s}, nil
}
