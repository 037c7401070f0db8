// Package slotpool implements the shadow stack: a growable pool of
// fixed-capacity blocks of raw pointer slots. It is the root set storage
// that a handle scope discipline is built on top of.
//
// A Pool never reallocates a block once that block has been created; growth
// only ever appends a new block. This is the invariant that keeps a slot
// pointer handed out by SlotPtr valid for the rest of the Pool's life, which
// is what lets a Handle keep using the same slot address across any number
// of further allocations or collections.
package slotpool

import (
	"unsafe"

	"github.com/fmstephe/flib/fmath"
)

// Pool is the append-only chain of handle blocks plus the cursor
// identifying the next free slot. It is not safe for concurrent use; a Pool
// belongs to exactly one Collector, on exactly one goroutine.
type Pool struct {
	capacity int
	blocks   [][]unsafe.Pointer
	next     int
}

// New builds a Pool whose blocks each hold capacity slots. capacity is
// rounded up to the next power of two (zero and negative values become 1),
// the same rounding an off-heap slab allocator applies to slab sizes.
func New(capacity int) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	capacity = int(fmath.NxtPowerOfTwo(int64(capacity)))

	return &Pool{
		capacity: capacity,
		blocks:   nil,
		next:     0,
	}
}

// Capacity returns the fixed slot count of each block.
func (p *Pool) Capacity() int {
	return p.capacity
}

// Next returns the current cursor: the logical index of the next free slot,
// and the count of slots currently considered live.
func (p *Pool) Next() int {
	return p.next
}

// PushSlot appends ptr as the next live slot, growing the block chain if
// the current block is full, and returns the slot's position. Amortized
// O(1); growth is O(capacity) only when a new block is created.
func (p *Pool) PushSlot(ptr unsafe.Pointer) int {
	blockIdx, offset := p.index(p.next)
	if blockIdx >= len(p.blocks) {
		p.grow(blockIdx + 1)
	}

	p.blocks[blockIdx][offset] = ptr
	slot := p.next
	p.next++
	return slot
}

// TruncateTo resets the cursor to n. Slots at positions >= n become
// logically absent; their contents are not inspected by ForEachLive until
// they are written again by a future PushSlot. n must not exceed the
// current cursor.
func (p *Pool) TruncateTo(n int) {
	if n > p.next {
		panic("slotpool: TruncateTo given a mark ahead of the current cursor")
	}
	p.next = n
}

// ForEachLive invokes f with every slot's index and current pointer value,
// for every position in [0, Next()).
func (p *Pool) ForEachLive(f func(slot int, ptr unsafe.Pointer)) {
	for i := 0; i < p.next; i++ {
		blockIdx, offset := p.index(i)
		f(i, p.blocks[blockIdx][offset])
	}
}

// SlotPtr returns the stable address of slot i. The address remains valid
// for the life of the Pool; the block backing it is never reallocated.
func (p *Pool) SlotPtr(i int) *unsafe.Pointer {
	if i < 0 || i >= p.next {
		panic("slotpool: SlotPtr given an index outside the live range")
	}
	blockIdx, offset := p.index(i)
	return &p.blocks[blockIdx][offset]
}

// BlockCount reports how many blocks have been allocated so far.
func (p *Pool) BlockCount() int {
	return len(p.blocks)
}

func (p *Pool) index(i int) (blockIdx, offset int) {
	return i / p.capacity, i % p.capacity
}

// grow appends new blocks until len(p.blocks) >= targetLen. Existing
// blocks are never touched: we only ever append a new []unsafe.Pointer to
// p.blocks, never resize one already present. Resizing p.blocks itself
// (the slice of block headers) is harmless because the blocks it holds are
// pointers to independent backing arrays, not inline data.
func (p *Pool) grow(targetLen int) {
	for len(p.blocks) < targetLen {
		p.blocks = append(p.blocks, make([]unsafe.Pointer, p.capacity))
	}
}
