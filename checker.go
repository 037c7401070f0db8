package gc

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// CheckTraceable walks T's shape with reflection and reports every field
// that holds a pointer, slice, map, channel, interface, or unsafe.Pointer
// which is not a HeapRef or a Handle. Such a field would be invisible to a
// hand-written Trace implementation and would violate the totality
// requirement of the Trace contract (spec section 4.7): a missed reference
// causes the unreachability test in a test suite to spuriously destroy an
// object that is, in fact, still reachable.
//
// This is the verification half of the "derive-style tooling" collaborator
// the core design leaves external; it does not generate a Trace
// implementation, it only tells you where a hand-written one is incomplete.
// Call it from a test, not from production code: it is a debugging aid, not
// part of the collector's runtime path.
func CheckTraceable[T any]() error {
	t := reflect.TypeFor[T]()
	paths := &untracedPaths{}
	walkForUntraced(t, t.Name(), paths)
	if paths.Len() != 0 {
		return fmt.Errorf("gc: %s has untraced pointer-like field(s): %s", t, paths)
	}
	return nil
}

type untracedPaths struct {
	paths []string
}

func (p *untracedPaths) add(path string) {
	p.paths = append(p.paths, path)
}

func (p *untracedPaths) Len() int {
	return len(p.paths)
}

func (p *untracedPaths) String() string {
	return strings.Join(p.paths, ",")
}

func walkForUntraced(t reflect.Type, path string, paths *untracedPaths) {
	if isHeapRefOrHandle(t) {
		return
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		// Leaves: primitive and pointer-free data. Strings are included
		// here because this checker concerns itself only with
		// references the collector must trace; a string's own backing
		// array is not something Trace could visit anyway.

	case reflect.Array:
		size := strconv.Itoa(t.Len())
		walkForUntraced(t.Elem(), path+"["+size+"]", paths)

	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			walkForUntraced(f.Type, path+"."+f.Name, paths)
		}

	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		paths.add(path + "<" + t.String() + ">")

	default:
		paths.add(path + "<" + t.String() + ">")
	}
}

func isHeapRefOrHandle(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.PkgPath() != "github.com/shadowgc/gc" {
		return false
	}
	name := t.Name()
	return strings.HasPrefix(name, "HeapRef[") || strings.HasPrefix(name, "Handle[")
}
