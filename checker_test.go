package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shadowgc/gc"
)

type wellTraced struct {
	Value int
	Next  gc.HeapRef[wellTraced]
	Local gc.Handle[wellTraced]
}

type missingField struct {
	Value int
	Next  *missingField
}

type nestedAggregate struct {
	Inner struct {
		Bad *int
	}
}

func TestCheckTraceableAcceptsHeapRefAndHandleFields(t *testing.T) {
	assert.NoError(t, gc.CheckTraceable[wellTraced]())
}

func TestCheckTraceableRejectsRawPointerField(t *testing.T) {
	err := gc.CheckTraceable[missingField]()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Next")
}

func TestCheckTraceableRejectsThroughInlineAggregate(t *testing.T) {
	err := gc.CheckTraceable[nestedAggregate]()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Bad")
}

func TestCheckTraceableAcceptsPrimitiveLeaves(t *testing.T) {
	type leaves struct {
		A int
		B string
		C float64
		D [4]byte
		E bool
	}
	assert.NoError(t, gc.CheckTraceable[leaves]())
}
