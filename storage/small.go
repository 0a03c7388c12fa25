package storage

import (
	"fmt"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
)

// Small keeps up to len(B) elements in an inline array and moves them to an
// allocator-provided block when more capacity is needed. ShrinkToFit-style
// requests may move them back.
type Small[T, B any] struct {
	buf  B
	heap []T // external block; nil while inline
	a    alloc.Allocator[T]
}

var _ Strategy[int] = (*Small[int, [4]int])(nil)

func (s *Small[T, B]) Init(a alloc.Allocator[T]) error {
	if err := checkBuffer[T, B](); err != nil {
		return err
	}
	s.a = a
	return nil
}

// InlineCap is the capacity of the inline array.
func (s *Small[T, B]) InlineCap() int {
	return inlineLen[T, B]()
}

func (s *Small[T, B]) allocator() alloc.Allocator[T] {
	return alloc.OrHeap(s.a)
}

func (s *Small[T, B]) Slots() []T {
	if s.heap != nil {
		return s.heap
	}
	return inlineView[T](&s.buf)
}

func (s *Small[T, B]) Cap() int {
	if s.heap != nil {
		return len(s.heap)
	}
	return s.InlineCap()
}

func (s *Small[T, B]) MaxCap() int {
	return max(s.InlineCap(), s.allocator().MaxSize())
}

func (s *Small[T, B]) Static() bool { return false }

func (s *Small[T, B]) IsInline() bool { return s.heap == nil }

func (s *Small[T, B]) Allocator() alloc.Allocator[T] { return s.allocator() }

func (s *Small[T, B]) SetAllocator(a alloc.Allocator[T]) { s.a = a }

func (s *Small[T, B]) Acquire(n, live int, tr memops.Traits[T]) error {
	if n <= s.Cap() {
		return nil
	}
	block, err := s.NewBlock(n)
	if err != nil {
		return err
	}
	if err := transfer(s.Slots(), block, live, tr); err != nil {
		s.FreeBlock(block)
		return err
	}
	s.Adopt(block)
	return nil
}

// NewBlock returns the inline array if n fits and the storage is currently
// external, and an allocated block otherwise.
func (s *Small[T, B]) NewBlock(n int) ([]T, error) {
	if s.heap != nil && n <= s.InlineCap() {
		return inlineView[T](&s.buf), nil
	}
	return s.allocator().Allocate(n)
}

func (s *Small[T, B]) Adopt(block []T) {
	old := s.heap
	if backedBy(block, &s.buf) || len(block) == 0 {
		s.heap = nil
		if old != nil {
			debugf("small storage: back inline, capacity %d -> %d", len(old), s.InlineCap())
		}
	} else {
		s.heap = block
		if old == nil {
			debugf("small storage: spilled to heap, capacity %d -> %d", s.InlineCap(), len(block))
		} else {
			debugf("small storage: reallocated, capacity %d -> %d", len(old), len(block))
		}
	}
	if old != nil && !sameBlock(old, block) {
		s.allocator().Deallocate(old)
	}
}

func (s *Small[T, B]) FreeBlock(block []T) {
	if !backedBy(block, &s.buf) {
		s.allocator().Deallocate(block)
	}
}

func (s *Small[T, B]) Shrink(live int, tr memops.Traits[T]) error {
	if s.heap == nil {
		return nil
	}
	var block []T
	switch {
	case live <= s.InlineCap():
		block = inlineView[T](&s.buf)
	case live < len(s.heap):
		var err error
		if block, err = s.allocator().Allocate(live); err != nil {
			return err
		}
	default:
		return nil
	}
	if err := transfer(s.heap, block, live, tr); err != nil {
		s.FreeBlock(block)
		return err
	}
	s.Adopt(block)
	return nil
}

func (s *Small[T, B]) Release() {
	if s.heap != nil {
		s.allocator().Deallocate(s.heap)
		s.heap = nil
	}
}

// Exchange handles the four residency combinations. Two external blocks just
// trade places. An inline side's elements cannot follow their block, so
// they are relocated into the other side's inline array.
func (s *Small[T, B]) Exchange(other *Small[T, B], size, otherSize int) {
	switch {
	case s.heap != nil && other.heap != nil:
		s.heap, other.heap = other.heap, s.heap
	case s.heap == nil && other.heap == nil:
		memops.Exchange(s.Slots(), other.Slots(), max(size, otherSize))
	case s.heap == nil:
		mine := inlineView[T](&s.buf)[:size]
		memops.Relocate(inlineView[T](&other.buf), mine)
		clear(mine)
		s.heap, other.heap = other.heap, nil
	default:
		theirs := inlineView[T](&other.buf)[:otherSize]
		memops.Relocate(inlineView[T](&s.buf), theirs)
		clear(theirs)
		s.heap, other.heap = nil, s.heap
	}
}

func (s *Small[T, B]) Check(size int) error {
	if err := checkBuffer[T, B](); err != nil {
		return err
	}
	if size < 0 || size > s.Cap() {
		return fmt.Errorf("%w: size %d outside capacity %d", ErrCorrupted, size, s.Cap())
	}
	if s.heap != nil {
		if backedBy(s.heap, &s.buf) {
			return fmt.Errorf("%w: external block aliases inline buffer", ErrCorrupted)
		}
		if len(s.heap) <= s.InlineCap() {
			return fmt.Errorf("%w: external block of %d slots fits inline capacity %d",
				ErrCorrupted, len(s.heap), s.InlineCap())
		}
		if err := checkTail(inlineView[T](&s.buf), 0); err != nil {
			return fmt.Errorf("%w: inline buffer in use while external", ErrCorrupted)
		}
	}
	return checkTail(s.Slots(), size)
}
