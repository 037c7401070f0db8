package gc

// Tracer is implemented by every managed object type. Trace must invoke v
// on each HeapRef field the payload transitively contains, including
// through inline (non-managed) aggregates, exactly once per field, and must
// not read or mutate any other heap state.
//
// Trace implementations are typically produced by code generation; a
// derive-style generator is explicitly out of scope for this package (see
// CheckTraceable for a runtime substitute that at least catches a
// hand-written Trace missing a field). A hand-written Trace that skips a
// field, visits the same field under two different targets, or reads
// unrelated memory is undefined behaviour: the next collection may reclaim
// an object still reachable through the program, or may corrupt the mark
// chain.
type Tracer interface {
	Trace(v Visitor)
}

// Visitor is passed to Trace. Visit marks and recursively traces the
// object a HeapRef points at, short-circuiting on a reference whose target
// is already marked so that cyclic object graphs terminate.
type Visitor interface {
	Visit(ref Ref)
}

// Ref is the type-erased form of a HeapRef, used only at the Trace/Visitor
// boundary. User code never constructs one directly; HeapRef[T].Ref()
// produces it.
type Ref struct {
	h *header
}

// IsNil reports whether Ref points at nothing.
func (r Ref) IsNil() bool {
	return r.h == nil
}

type markVisitor struct{}

func (markVisitor) Visit(ref Ref) {
	if ref.h == nil || ref.h.marked {
		return
	}
	ref.h.marked = true
	if ref.h.trace != nil {
		ref.h.trace(markVisitor{})
	}
}
