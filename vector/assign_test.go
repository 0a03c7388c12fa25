package vector

import (
	"fmt"
	"testing"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
)

func seq(from, n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = from + i
	}
	return s
}

func TestSwapAllResidencies(t *testing.T) {
	for _, sizes := range [][2]int{{2, 3}, {2, 7}, {6, 3}, {6, 9}} {
		t.Run(fmt.Sprintf("%d-%d", sizes[0], sizes[1]), func(t *testing.T) {
			a := alloc.NewTracking[int](alloc.Propagation{})
			x := build[small4](t, Config[int]{Allocator: a}, seq(0, sizes[0])...)
			y := build[small4](t, Config[int]{Allocator: a.Sibling(alloc.Propagation{})}, seq(100, sizes[1])...)
			xin, yin := x.IsInline(), y.IsInline()
			Swap(x, y)
			checkContents(t, x, seq(100, sizes[1])...)
			checkContents(t, y, seq(0, sizes[0])...)
			if x.IsInline() != yin || y.IsInline() != xin {
				t.Fatalf("expected heap blocks to be exchanged")
			}
			x.Swap(y)
			checkContents(t, x, seq(0, sizes[0])...)
			checkContents(t, y, seq(100, sizes[1])...)
			x.Reset()
			y.Reset()
			if st := a.Stats(); st.LiveBlocks != 0 {
				t.Fatalf("expected all blocks returned, have %+v", st)
			}
		})
	}
}

func TestSwapPropagatesAllocators(t *testing.T) {
	onSwap := alloc.Propagation{OnSwap: true}
	a, b := alloc.NewTracking[int](onSwap), alloc.NewTracking[int](onSwap)
	x := build[dyn](t, Config[int]{Allocator: a}, 1, 2, 3)
	y := build[dyn](t, Config[int]{Allocator: b}, 4)
	x.Swap(y)
	if !x.Allocator().Equal(b) || !y.Allocator().Equal(a) {
		t.Fatalf("expected allocators to follow their blocks")
	}
	x.Reset()
	y.Reset()
	if a.Stats().LiveBlocks != 0 || b.Stats().LiveBlocks != 0 {
		t.Fatalf("expected blocks returned to their own allocators")
	}
}

func TestSwapIncompatibleAllocators(t *testing.T) {
	x := build[dyn](t, Config[int]{Allocator: alloc.NewTracking[int](alloc.Propagation{})}, 1)
	y := build[dyn](t, Config[int]{Allocator: alloc.NewTracking[int](alloc.Propagation{})}, 2)
	expectPanic(t, ErrIncompatibleAllocators, func() { x.Swap(y) })
}

func TestAssignOverExistingElements(t *testing.T) {
	probe := memops.NewProbe[int]()
	v := build[dyn](t, Config[int]{Traits: probe}, 1, 2, 3, 4)
	src := build[dyn](t, Config[int]{Traits: probe}, 7, 8)
	destroys := probe.Destroys
	if err := v.Assign(src); err != nil {
		t.Fatalf("unexpected assign error: %v", err)
	}
	checkContents(t, v, 7, 8)
	if probe.Assigns != 2 || probe.Destroys-destroys != 2 || v.Cap() != 4 {
		t.Fatalf("expected 2 assignments and 2 destructions in place, have %d/%d",
			probe.Assigns, probe.Destroys-destroys)
	}
	if err := v.Assign(build[dyn](t, Config[int]{}, 1, 2, 3)); err != nil {
		t.Fatalf("unexpected assign error: %v", err)
	}
	checkContents(t, v, 1, 2, 3)
}

func TestAssignIntoNewBlockIsStrong(t *testing.T) {
	probe := memops.NewProbe[int]()
	a := alloc.NewTracking[int](alloc.Propagation{})
	v := build[dyn](t, Config[int]{Allocator: a, Traits: probe}, 1, 2)
	src := build[dyn](t, Config[int]{}, seq(10, 5)...)
	blocks := a.Stats().LiveBlocks
	probe.FailAfter(3)
	if err := v.Assign(src); err != memops.ErrInjected {
		t.Fatalf("expected ErrInjected, have %v", err)
	}
	checkContents(t, v, 1, 2)
	if a.Stats().LiveBlocks != blocks || probe.Live != 2 {
		t.Fatalf("expected failed assignment to leave no traces, stats=%+v", a.Stats())
	}
}

func TestAssignPropagatesOnCopy(t *testing.T) {
	onCopy := alloc.Propagation{OnCopy: true}
	mine, theirs := alloc.NewTracking[int](onCopy), alloc.NewTracking[int](onCopy)
	v := build[dyn](t, Config[int]{Allocator: mine}, 1, 2, 3)
	src := build[dyn](t, Config[int]{Allocator: theirs}, 4, 5)
	if err := v.Assign(src); err != nil {
		t.Fatalf("unexpected assign error: %v", err)
	}
	checkContents(t, v, 4, 5)
	if !v.Allocator().Equal(theirs) || mine.Stats().LiveBlocks != 0 {
		t.Fatalf("expected the source allocator to be adopted, stats=%+v", mine.Stats())
	}
}

func TestMoveFromTakesHeapBlock(t *testing.T) {
	probe := memops.NewProbe[int]()
	a := alloc.NewTracking[int](alloc.Propagation{})
	v := build[small4](t, Config[int]{Allocator: a, Traits: probe}, 1)
	src := build[small4](t, Config[int]{Allocator: a.Sibling(alloc.Propagation{}), Traits: probe}, seq(0, 6)...)
	data, moves := src.Nth(0), probe.Moves
	if err := v.MoveFrom(src); err != nil {
		t.Fatalf("unexpected move error: %v", err)
	}
	checkContents(t, v, seq(0, 6)...)
	checkContents(t, src)
	if v.Nth(0) != data || probe.Moves != moves {
		t.Fatalf("expected the block to be taken over without element moves")
	}
}

func TestMoveFromElementWise(t *testing.T) {
	probe := memops.NewProbe[int]()
	mine := alloc.NewTracking[int](alloc.Propagation{})
	theirs := alloc.NewTracking[int](alloc.Propagation{})
	v := build[small4](t, Config[int]{Allocator: mine, Traits: probe}, 9)
	inline := build[small4](t, Config[int]{Allocator: theirs, Traits: probe}, 1, 2)
	if err := v.MoveFrom(inline); err != nil {
		t.Fatalf("unexpected move error: %v", err)
	}
	checkContents(t, v, 1, 2)
	checkContents(t, inline)
	heap := build[small4](t, Config[int]{Allocator: theirs, Traits: probe}, seq(0, 5)...)
	moves := probe.Moves
	if err := v.MoveFrom(heap); err != nil {
		t.Fatalf("unexpected move error: %v", err)
	}
	checkContents(t, v, seq(0, 5)...)
	if probe.Moves-moves != 5 || !heap.IsEmpty() {
		t.Fatalf("expected 5 element moves between unequal allocators, have %d", probe.Moves-moves)
	}
	if probe.Live != 5 {
		t.Fatalf("expected 5 live elements, have %d", probe.Live)
	}
	if v.Allocator() != alloc.Allocator[int](mine) || v.IsInline() {
		t.Fatalf("expected v to keep its allocator and hold a heap block")
	}
}

func TestCloneSelectsAllocator(t *testing.T) {
	arena := alloc.NewArena[int](16, 0)
	v := build[dyn](t, Config[int]{Allocator: arena}, 1, 2, 3)
	c, err := v.Clone()
	if err != nil {
		t.Fatalf("unexpected clone error: %v", err)
	}
	checkContents(t, c, 1, 2, 3)
	if _, ok := c.Allocator().(alloc.Heap[int]); !ok {
		t.Fatalf("expected arena to select the heap for copies, have %T", c.Allocator())
	}
	d, err := v.CloneWith(arena)
	if err != nil {
		t.Fatalf("unexpected clone error: %v", err)
	}
	*d.Nth(0) = 0
	checkContents(t, v, 1, 2, 3)
}
