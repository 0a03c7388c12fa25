package storage

import (
	"fmt"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
)

// Dynamic storage always lives in an allocator-provided block.
type Dynamic[T any] struct {
	heap []T
	a    alloc.Allocator[T]
}

var _ Strategy[int] = (*Dynamic[int])(nil)

func (s *Dynamic[T]) Init(a alloc.Allocator[T]) error {
	s.a = a
	return nil
}

func (s *Dynamic[T]) allocator() alloc.Allocator[T] {
	return alloc.OrHeap(s.a)
}

func (s *Dynamic[T]) Slots() []T { return s.heap }

func (s *Dynamic[T]) Cap() int { return len(s.heap) }

func (s *Dynamic[T]) MaxCap() int { return s.allocator().MaxSize() }

func (s *Dynamic[T]) Static() bool { return false }

func (s *Dynamic[T]) IsInline() bool { return false }

func (s *Dynamic[T]) Allocator() alloc.Allocator[T] { return s.allocator() }

func (s *Dynamic[T]) SetAllocator(a alloc.Allocator[T]) { s.a = a }

func (s *Dynamic[T]) Acquire(n, live int, tr memops.Traits[T]) error {
	if n <= s.Cap() {
		return nil
	}
	block, err := s.NewBlock(n)
	if err != nil {
		return err
	}
	if err := transfer(s.heap, block, live, tr); err != nil {
		s.FreeBlock(block)
		return err
	}
	s.Adopt(block)
	return nil
}

func (s *Dynamic[T]) NewBlock(n int) ([]T, error) {
	return s.allocator().Allocate(n)
}

func (s *Dynamic[T]) Adopt(block []T) {
	old := s.heap
	s.heap = block
	debugf("dynamic storage: capacity %d -> %d", len(old), len(block))
	if len(old) > 0 && !sameBlock(old, block) {
		s.allocator().Deallocate(old)
	}
}

func (s *Dynamic[T]) FreeBlock(block []T) {
	s.allocator().Deallocate(block)
}

func (s *Dynamic[T]) Shrink(live int, tr memops.Traits[T]) error {
	if live >= len(s.heap) {
		return nil
	}
	if live == 0 {
		s.Release()
		return nil
	}
	block, err := s.allocator().Allocate(live)
	if err != nil {
		return err
	}
	if err := transfer(s.heap, block, live, tr); err != nil {
		s.FreeBlock(block)
		return err
	}
	s.Adopt(block)
	return nil
}

func (s *Dynamic[T]) Release() {
	if len(s.heap) > 0 {
		s.allocator().Deallocate(s.heap)
	}
	s.heap = nil
}

func (s *Dynamic[T]) Exchange(other *Dynamic[T], _, _ int) {
	s.heap, other.heap = other.heap, s.heap
}

func (s *Dynamic[T]) Check(size int) error {
	if size < 0 || size > len(s.heap) {
		return fmt.Errorf("%w: size %d outside capacity %d", ErrCorrupted, size, len(s.heap))
	}
	return checkTail(s.heap, size)
}
