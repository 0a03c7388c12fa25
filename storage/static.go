package storage

import (
	"fmt"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
)

// Static is storage with a fixed inline capacity of len(B). It never
// allocates. Requests beyond its capacity are precondition violations.
type Static[T, B any] struct {
	buf B
}

var _ Strategy[int] = (*Static[int, [4]int])(nil)

func (s *Static[T, B]) Init(_ alloc.Allocator[T]) error {
	return checkBuffer[T, B]()
}

func (s *Static[T, B]) Slots() []T {
	return inlineView[T](&s.buf)
}

func (s *Static[T, B]) Cap() int {
	return inlineLen[T, B]()
}

func (s *Static[T, B]) MaxCap() int {
	return s.Cap()
}

func (s *Static[T, B]) Static() bool { return true }

func (s *Static[T, B]) IsInline() bool { return true }

func (s *Static[T, B]) Allocator() alloc.Allocator[T] { return nil }

// SetAllocator is a no-op: static storage has no allocator.
func (s *Static[T, B]) SetAllocator(_ alloc.Allocator[T]) {}

func (s *Static[T, B]) Acquire(n, _ int, _ memops.Traits[T]) error {
	if n <= s.Cap() {
		return nil
	}
	assert(false, ErrCapacityExceeded, fmt.Sprintf("acquire %d > capacity %d", n, s.Cap()))
	return fmt.Errorf("%w: acquire %d > capacity %d", ErrCapacityExceeded, n, s.Cap())
}

// NewBlock always violates a precondition: static storage has exactly one
// block, which is in use.
func (s *Static[T, B]) NewBlock(n int) ([]T, error) {
	assert(false, ErrCapacityExceeded, fmt.Sprintf("static storage cannot reallocate to %d", n))
	return nil, fmt.Errorf("%w: static storage cannot reallocate to %d", ErrCapacityExceeded, n)
}

func (s *Static[T, B]) Adopt(block []T) {
	assert(len(block) == 0 || backedBy(block, &s.buf), ErrCapacityExceeded, "static storage adopts foreign block")
}

func (s *Static[T, B]) FreeBlock(_ []T) {}

func (s *Static[T, B]) Shrink(_ int, _ memops.Traits[T]) error { return nil }

func (s *Static[T, B]) Release() {}

func (s *Static[T, B]) Exchange(other *Static[T, B], size, otherSize int) {
	memops.Exchange(s.Slots(), other.Slots(), max(size, otherSize))
}

func (s *Static[T, B]) Check(size int) error {
	if err := checkBuffer[T, B](); err != nil {
		return err
	}
	if size < 0 || size > s.Cap() {
		return fmt.Errorf("%w: size %d outside static capacity %d", ErrCorrupted, size, s.Cap())
	}
	return checkTail(s.Slots(), size)
}
