package alloc

import "fmt"

// DefaultChunkSlots is the chunk size of an Arena created with chunk size 0.
const DefaultChunkSlots = 1024

// Arena carves blocks out of large chunks. Deallocate only updates the
// bookkeeping; memory is given back when the arena is reset.
//
// Arenas compare equal only to themselves and never propagate, so containers
// moved or copied between arenas transfer their elements one by one. A copy
// of a container built in an arena is placed on the Go heap (see
// SelectOnCopy).
type Arena[T any] struct {
	chunkSlots int
	current    []T
	chunks     int
	used       int
	maxSlots   int
}

var _ Allocator[int] = (*Arena[int])(nil)

// NewArena creates an arena with chunks of chunkSlots slots. maxSlots
// bounds the total number of slots handed out; 0 means unbounded.
func NewArena[T any](chunkSlots, maxSlots int) *Arena[T] {
	if chunkSlots <= 0 {
		chunkSlots = DefaultChunkSlots
	}
	return &Arena[T]{chunkSlots: chunkSlots, maxSlots: maxSlots}
}

func (a *Arena[T]) Allocate(n int) ([]T, error) {
	if n < 0 || n > a.MaxSize() {
		return nil, fmt.Errorf("%w: %d slots", ErrAllocationTooLarge, n)
	}
	if a.maxSlots > 0 && a.used+n > a.maxSlots {
		return nil, fmt.Errorf("%w: arena exhausted (%d of %d slots used)", ErrOutOfMemory, a.used, a.maxSlots)
	}
	if n == 0 {
		return nil, nil
	}
	if n > a.chunkSlots {
		// oversized requests get a chunk of their own
		a.chunks++
		a.used += n
		return make([]T, n), nil
	}
	if len(a.current) < n {
		a.current = make([]T, a.chunkSlots)
		a.chunks++
		debugf("arena: new chunk #%d of %d slots", a.chunks, a.chunkSlots)
	}
	block := a.current[:n:n]
	a.current = a.current[n:]
	a.used += n
	return block, nil
}

// Deallocate clears the block; its slots are not reused before Reset.
func (a *Arena[T]) Deallocate(block []T) {
	clear(block)
}

func (a *Arena[T]) MaxSize() int {
	if a.maxSlots > 0 {
		return a.maxSlots
	}
	return MaxSlots[T]()
}

func (a *Arena[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*Arena[T])
	return ok && o == a
}

func (a *Arena[T]) Propagation() Propagation {
	return Propagation{}
}

// SelectOnCopy places copies of arena containers on the Go heap.
func (a *Arena[T]) SelectOnCopy() Allocator[T] {
	return Heap[T]{}
}

// Used returns the number of slots handed out since the last Reset.
func (a *Arena[T]) Used() int {
	return a.used
}

// Chunks returns the number of chunks allocated since the last Reset.
func (a *Arena[T]) Chunks() int {
	return a.chunks
}

// Reset forgets all chunks. Blocks handed out before must not be used
// afterwards.
func (a *Arena[T]) Reset() {
	a.current = nil
	a.chunks = 0
	a.used = 0
}
