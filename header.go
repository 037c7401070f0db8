package gc

import "unsafe"

// header is the type-erased allocation record every managed object carries:
// a trace routine, a destructor, the cell's size, a mark bit, and the link
// field sweep uses to thread every live allocation into one chain.
//
// header never appears in user code. HeapRef and the slot pool both just
// hold *header; the concrete payload type is recovered through the payload
// field, which every cell[T] points back at its own T.
type header struct {
	trace   func(Visitor)
	destroy func()
	size    uintptr
	marked  bool
	next    *header
	payload unsafe.Pointer
}

// cell is the actual allocation: a header glued to the payload it
// describes. Allocating a *cell[T] and taking the address of its hdr field
// is what produces the *header a Handle's slot points at.
type cell[T any] struct {
	hdr     header
	payload T
}

// destroyer is the optional cleanup hook a managed type may implement. Types
// that don't implement it simply have no destructor work to run at sweep.
type destroyer interface {
	Destroy()
}

// TracerPtr constrains a type parameter T to one whose pointer type
// implements Tracer. Every managed object type's *T must satisfy Tracer;
// this is how that constraint is expressed for value-typed payloads stored
// inline in a cell.
type TracerPtr[T any] interface {
	*T
	Tracer
}

func newCell[T any, PT TracerPtr[T]](value T) (h *header, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wrapOOM(r)
		}
	}()

	cl := &cell[T]{payload: value}
	cl.hdr.payload = unsafe.Pointer(&cl.payload)
	cl.hdr.size = unsafe.Sizeof(*cl)
	cl.hdr.trace = func(v Visitor) {
		PT(&cl.payload).Trace(v)
	}
	cl.hdr.destroy = func() {
		if d, ok := any(PT(&cl.payload)).(destroyer); ok {
			d.Destroy()
		}
	}

	return &cl.hdr, nil
}
