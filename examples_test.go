package gc_test

import (
	"fmt"

	"github.com/shadowgc/gc"
)

// Allocating inside a scope gives back a Handle. Dereferencing it reads the
// payload through the slot; the read stays valid for as long as the scope
// is active.
func ExampleAlloc() {
	c := gc.New()

	_ = c.Run(func(s *gc.Scope) error {
		h, err := gc.Alloc[Counted](s, Counted{Value: 42, destroyed: new(int)})
		if err != nil {
			return err
		}

		v, err := h.Deref()
		if err != nil {
			return err
		}

		fmt.Println(v.Value)
		return nil
	})
	// Output: 42
}

// A HeapRef stored inside a managed object cannot be read directly. It
// must be promoted to a Handle in some active scope with ToLocal first.
func ExampleToLocal() {
	c := gc.New()

	_ = c.Run(func(s *gc.Scope) error {
		innerHandle, err := gc.Alloc[Inner](s, Inner{Value: 7, destroyed: new(int)})
		if err != nil {
			return err
		}
		innerRef, err := innerHandle.ToHeap()
		if err != nil {
			return err
		}

		compoundHandle, err := gc.Alloc[Compound](s, Compound{A: innerRef, destroyed: new(int)})
		if err != nil {
			return err
		}
		compound, err := compoundHandle.Deref()
		if err != nil {
			return err
		}

		local, err := gc.ToLocal[Inner](compound.A, s)
		if err != nil {
			return err
		}
		v, err := local.Deref()
		if err != nil {
			return err
		}

		fmt.Println(v.Value)
		return nil
	})
	// Output: 7
}

// Handles only remain valid while their owning scope is active. Using one
// after its scope has exited is reported as ErrDeadScope, not a dangling
// read.
func ExampleHandle_Deref_afterScopeExit() {
	c := gc.New()
	var stale gc.Handle[Counted]

	_ = c.Run(func(s *gc.Scope) error {
		return s.Nested(func(child *gc.Scope) error {
			h, err := gc.Alloc[Counted](child, Counted{Value: 1, destroyed: new(int)})
			if err != nil {
				return err
			}
			stale = h
			return nil
		})
	})

	_, err := stale.Deref()
	fmt.Println(err)
	// Output: gc: scope is no longer active
}
