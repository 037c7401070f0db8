package gc

import "unsafe"

// HeapRef is a reference storable inside a managed object's payload. It
// carries no scope brand and cannot be dereferenced directly: reading the
// pointee requires promoting it into a Handle, rooted in some active
// scope, via ToLocal.
//
// A HeapRef is itself a plain value (a single pointer internally); copying
// it is cheap and carries no ownership. Visited by Trace, it is what lets
// the collector discover the rest of an object graph during mark.
type HeapRef[T any] struct {
	h *header
}

// IsNil reports whether the reference points at nothing.
func (r HeapRef[T]) IsNil() bool {
	return r.h == nil
}

// Ref erases T, producing the value Trace implementations pass to a
// Visitor.
func (r HeapRef[T]) Ref() Ref {
	return Ref{h: r.h}
}

// ToLocal promotes a HeapRef into a Handle rooted in scope s, allocating a
// fresh slot. s must be the collector's innermost active scope, the same
// restriction Alloc is held to, since this allocates a slot exactly like
// Alloc does.
func ToLocal[T any](r HeapRef[T], s *Scope) (h Handle[T], err error) {
	if s == nil || !s.alive {
		return Handle[T]{}, ErrDeadScope
	}
	if s.gc.top() != s {
		return Handle[T]{}, ErrScopeNotActive
	}

	defer func() {
		if rec := recover(); rec != nil {
			h, err = Handle[T]{}, wrapOOM(rec)
		}
	}()

	idx := s.gc.pool.PushSlot(unsafe.Pointer(r.h))
	slot := s.gc.pool.SlotPtr(idx)

	return Handle[T]{slot: slot, scope: s}, nil
}
