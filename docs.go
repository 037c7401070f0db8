// Package gc implements a precise, tracing mark-sweep collector organised
// around a V8-style handle-scope discipline.
//
// References held by native code are never stored directly on the native
// call stack. Instead they live as slots in a shadow stack (package
// internal/slotpool) that the collector walks as its root set on every
// collection. This means the collector can run at any allocation point,
// including while native frames hold live references, without coordinating
// "safe points".
//
// Typical usage:
//
//	c := gc.New()
//	err := c.Run(func(s *gc.Scope) error {
//		h, err := gc.Alloc[Node](s, Node{Value: 42})
//		if err != nil {
//			return err
//		}
//		n, err := h.Deref()
//		if err != nil {
//			return err
//		}
//		fmt.Println(n.Value)
//		return nil
//	})
//
// A managed type stores references to other managed objects through
// HeapRef[T], never through a plain Go pointer, and implements Tracer so the
// collector can find those references during mark:
//
//	type Node struct {
//		Value int
//		Next  gc.HeapRef[Node]
//	}
//
//	func (n *Node) Trace(v gc.Visitor) {
//		v.Visit(n.Next.Ref())
//	}
//
// A HeapRef cannot be dereferenced directly. It must be promoted to a
// Handle, rooted in some active scope, with ToLocal before its payload can
// be read.
//
// A Collector, and every Scope and Handle derived from it, belongs to
// exactly one goroutine. There is no internal synchronization; sharing a
// Collector across goroutines is a misuse the type system cannot catch.
package gc
