package alloc

import (
	"errors"
	"testing"

	"github.com/npillmayer/flat/internal/contract"
)

func TestHeapAllocator(t *testing.T) {
	var a Allocator[int] = Heap[int]{}
	block, err := a.Allocate(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(block) != 4 {
		t.Fatalf("unexpected block len %d", len(block))
	}
	if !a.Equal(Heap[int]{}) {
		t.Fatalf("heap allocators must compare equal")
	}
	if _, err := a.Allocate(-1); !errors.Is(err, ErrAllocationTooLarge) {
		t.Fatalf("expected ErrAllocationTooLarge, got %v", err)
	}
	if p := a.Propagation(); p.OnCopy || !p.OnMove || p.OnSwap {
		t.Fatalf("unexpected heap propagation %+v", p)
	}
}

func TestTrackingCountsBlocks(t *testing.T) {
	a := NewTracking[string](Propagation{})
	b1, err := a.Allocate(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b2, _ := a.Allocate(5)
	s := a.Stats()
	if s.LiveBlocks != 2 || s.LiveSlots != 8 || s.PeakSlots != 8 {
		t.Fatalf("unexpected stats after allocation: %+v", s)
	}
	a.Deallocate(b1)
	a.Deallocate(b2)
	s = a.Stats()
	if s.LiveBlocks != 0 || s.LiveSlots != 0 || s.Deallocations != 2 {
		t.Fatalf("unexpected stats after release: %+v", s)
	}
}

func TestTrackingLimitAndInjection(t *testing.T) {
	a := NewTracking[int](Propagation{})
	a.Limit(10)
	if _, err := a.Allocate(11); !errors.Is(err, ErrAllocationTooLarge) {
		t.Fatalf("expected ErrAllocationTooLarge, got %v", err)
	}
	b, _ := a.Allocate(8)
	if _, err := a.Allocate(4); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory past limit, got %v", err)
	}
	a.Deallocate(b)
	a.FailAfter(1)
	if _, err := a.Allocate(1); err != nil {
		t.Fatalf("first allocation should succeed: %v", err)
	}
	if _, err := a.Allocate(1); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if _, err := a.Allocate(1); err != nil {
		t.Fatalf("injection must fire once: %v", err)
	}
}

func TestTrackingEquality(t *testing.T) {
	a := NewTracking[int](Propagation{})
	b := NewTracking[int](Propagation{})
	sib := a.Sibling(Propagation{OnSwap: true})
	if a.Equal(b) {
		t.Fatalf("independent pools must not compare equal")
	}
	if !a.Equal(sib) || !sib.Equal(a) {
		t.Fatalf("siblings must compare equal")
	}
	block, _ := a.Allocate(2)
	sib.Deallocate(block)
	if a.Stats().LiveBlocks != 0 {
		t.Fatalf("sibling release not accounted in shared pool")
	}
	if !Compatible[int](sib, b) || Compatible[int](a, b) {
		t.Fatalf("unexpected swap compatibility")
	}
}

func TestTrackingRejectsForeignBlock(t *testing.T) {
	if !contract.Enabled {
		t.Skip("assertions disabled")
	}
	a := NewTracking[int](Propagation{})
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrForeignBlock) {
			t.Fatalf("expected ErrForeignBlock panic, got %v", r)
		}
	}()
	a.Deallocate(make([]int, 2))
}

func TestArenaCarvesChunks(t *testing.T) {
	a := NewArena[int](8, 20)
	b1, _ := a.Allocate(5)
	b2, _ := a.Allocate(3)
	if a.Chunks() != 1 || a.Used() != 8 {
		t.Fatalf("expected one chunk with 8 used slots, got chunks=%d used=%d", a.Chunks(), a.Used())
	}
	if cap(b1) != 5 || len(b2) != 3 {
		t.Fatalf("blocks must be capped to their size")
	}
	if _, err := a.Allocate(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Chunks() != 2 {
		t.Fatalf("expected a second chunk, got %d", a.Chunks())
	}
	if _, err := a.Allocate(10); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("expected arena exhaustion, got %v", err)
	}
	if !a.Equal(a) || a.Equal(NewArena[int](8, 0)) {
		t.Fatalf("arenas compare by identity")
	}
	if _, ok := ForCopy[int](a).(Heap[int]); !ok {
		t.Fatalf("copies of arena containers go to the heap")
	}
	a.Reset()
	if a.Used() != 0 || a.Chunks() != 0 {
		t.Fatalf("reset did not clear arena")
	}
}
