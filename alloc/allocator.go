package alloc

import (
	"fmt"
	"math"
	"unsafe"
)

// Propagation tells whether a container adopts the allocator of the other
// container on copy assignment, move assignment and swap.
type Propagation struct {
	OnCopy bool
	OnMove bool
	OnSwap bool
}

// Allocator is the capability contract containers consume.
//
// Allocate returns a block of exactly n uninitialized (zero) slots or an
// error, in which case nothing has been allocated. Deallocate takes back a
// block previously returned by Allocate of an allocator comparing equal.
// Blocks handed to Deallocate hold no live elements.
//
// Equal reports whether blocks of one allocator may be released by the
// other. MaxSize is the largest n Allocate may succeed for.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Deallocate(block []T)
	MaxSize() int
	Equal(other Allocator[T]) bool
	Propagation() Propagation
}

// CopySelector is implemented by allocators which hand out a different
// allocator for a container constructed as a copy of another one.
type CopySelector[T any] interface {
	SelectOnCopy() Allocator[T]
}

// ForCopy returns the allocator a copy of a container using a should use.
func ForCopy[T any](a Allocator[T]) Allocator[T] {
	if a == nil {
		return Heap[T]{}
	}
	if sel, ok := a.(CopySelector[T]); ok {
		return sel.SelectOnCopy()
	}
	return a
}

// OrHeap returns a, or Heap[T] if a is nil.
func OrHeap[T any](a Allocator[T]) Allocator[T] {
	if a == nil {
		return Heap[T]{}
	}
	return a
}

// Compatible reports whether containers using a and b may swap internals:
// either a propagates on swap or both compare equal.
func Compatible[T any](a, b Allocator[T]) bool {
	a, b = OrHeap(a), OrHeap(b)
	return a.Propagation().OnSwap || a.Equal(b)
}

// MaxSlots returns the largest number of T slots addressable in one block.
func MaxSlots[T any]() int {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / size)
}

// Heap allocates from the Go heap. It is stateless: all Heap values compare
// equal, and move assignment propagates (a no-op).
type Heap[T any] struct{}

var _ Allocator[int] = Heap[int]{}

func (Heap[T]) Allocate(n int) ([]T, error) {
	if n < 0 || n > MaxSlots[T]() {
		return nil, fmt.Errorf("%w: %d slots", ErrAllocationTooLarge, n)
	}
	return make([]T, n), nil
}

// Deallocate drops the block; the garbage collector reclaims it.
func (Heap[T]) Deallocate(block []T) {}

func (Heap[T]) MaxSize() int { return MaxSlots[T]() }

func (Heap[T]) Equal(other Allocator[T]) bool {
	_, ok := other.(Heap[T])
	return ok
}

func (Heap[T]) Propagation() Propagation {
	return Propagation{OnMove: true}
}
