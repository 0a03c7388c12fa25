package vector

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/internal/contract"
	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/storage"
)

type (
	dyn    = storage.Dynamic[int]
	small4 = storage.Small[int, [4]int]
	stat5  = storage.Static[int, [5]int]
)

func build[S any, P storage.Ptr[int, S]](t *testing.T, cfg Config[int], vals ...int) *Vector[int, S, P] {
	t.Helper()
	v, err := New[int, S, P](cfg)
	if err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	if _, err := v.Insert(0, vals...); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	return v
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	if !contract.Enabled {
		t.Skip("assertions disabled")
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected precondition panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("expected panic wrapping %v, got %v", target, r)
		}
	}()
	fn()
}

func checkContents[S any, P storage.Ptr[int, S]](t *testing.T, v *Vector[int, S, P], want ...int) {
	t.Helper()
	if err := v.Check(); err != nil {
		t.Fatalf("vector invariants broken: %v", err)
	}
	if got := v.Data(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, have %v", want, got)
	}
}

func TestGrowthLaw(t *testing.T) {
	v := build[dyn](t, Config[int]{})
	var caps []int
	for i := range 5 {
		if err := v.Push(i); err != nil {
			t.Fatalf("unexpected push error: %v", err)
		}
		caps = append(caps, v.Cap())
	}
	if want := []int{1, 2, 4, 4, 8}; !slices.Equal(caps, want) {
		t.Fatalf("expected capacities %v, have %v", want, caps)
	}
	if _, err := v.Insert(2, make([]int, 20)...); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	if v.Len() != 25 || v.Cap() != 25 {
		t.Fatalf("expected size = capacity = 25, have %d/%d", v.Len(), v.Cap())
	}
}

func TestGrowthCappedAtMaxSize(t *testing.T) {
	a := alloc.NewTracking[int](alloc.Propagation{})
	v := build[dyn](t, Config[int]{Allocator: a}, 1, 2, 3, 4, 5, 6, 7, 8)
	a.Limit(10)
	if c, err := v.grownCap(1); err != nil || c != 10 {
		t.Fatalf("expected growth capped at 10, have %d, %v", c, err)
	}
	if _, err := v.grownCap(3); !errors.Is(err, ErrLengthExceeded) {
		t.Fatalf("expected ErrLengthExceeded, have %v", err)
	}
	if err := v.Reserve(11); !errors.Is(err, ErrLengthExceeded) {
		t.Fatalf("expected ErrLengthExceeded from reserve, have %v", err)
	}
	checkContents(t, v, 1, 2, 3, 4, 5, 6, 7, 8)
}

func TestSmallVectorResidency(t *testing.T) {
	a := alloc.NewTracking[int](alloc.Propagation{})
	v := build[small4](t, Config[int]{Allocator: a}, 1, 2, 3, 4)
	if !v.IsInline() || v.Cap() != 4 || !v.Full() {
		t.Fatalf("expected full inline vector, cap=%d", v.Cap())
	}
	if err := v.Push(5); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}
	if v.IsInline() || v.Cap() != 8 || a.Stats().LiveBlocks != 1 {
		t.Fatalf("expected spill to a heap block of 8, cap=%d", v.Cap())
	}
	if err := v.Resize(3); err != nil {
		t.Fatalf("unexpected resize error: %v", err)
	}
	if err := v.ShrinkToFit(); err != nil {
		t.Fatalf("unexpected shrink error: %v", err)
	}
	if !v.IsInline() || a.Stats().LiveBlocks != 0 {
		t.Fatalf("expected vector back inline, stats=%+v", a.Stats())
	}
	checkContents(t, v, 1, 2, 3)
}

func TestInsertPositions(t *testing.T) {
	v := build[small4](t, Config[int]{}, 1, 5)
	if pos, err := v.Insert(1, 2, 3, 4); err != nil || pos != 1 {
		t.Fatalf("unexpected insert result %d, %v", pos, err)
	}
	checkContents(t, v, 1, 2, 3, 4, 5)
	if _, err := v.Insert(0, v.Data()[3:]...); err != nil {
		t.Fatalf("unexpected self-insert error: %v", err)
	}
	checkContents(t, v, 4, 5, 1, 2, 3, 4, 5)
	if _, err := v.Emplace(7, func(p *int) error { *p = 6; return nil }); err != nil {
		t.Fatalf("unexpected emplace error: %v", err)
	}
	x := 9
	if _, err := v.InsertOwned(0, &x); err != nil || x != 0 {
		t.Fatalf("expected moved-from source, have %d, %v", x, err)
	}
	checkContents(t, v, 9, 4, 5, 1, 2, 3, 4, 5, 6)
	expectPanic(t, ErrIndexOutOfBounds, func() {
		_, _ = v.Insert(v.Len()+1, 0)
	})
}

func TestInsertSeqAndSegments(t *testing.T) {
	v := build[dyn](t, Config[int]{}, 1, 4)
	if _, err := v.InsertSeq(1, slices.Values([]int{2, 3})); err != nil {
		t.Fatalf("unexpected insert error: %v", err)
	}
	w := build[small4](t, Config[int]{}, 5, 6)
	if err := v.AppendSegments(w); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}
	checkContents(t, v, 1, 2, 3, 4, 5, 6)
}

func TestInsertStrongGuarantee(t *testing.T) {
	for _, tc := range []struct {
		name  string
		panic bool
		vals  []int
	}{
		{"in-place error", false, []int{7}},
		{"in-place panic", true, []int{7}},
		{"reallocating error", false, []int{7, 8, 9}},
		{"reallocating panic", true, []int{7, 8, 9}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			probe := memops.NewProbe[int]()
			a := alloc.NewTracking[int](alloc.Propagation{})
			v := build[dyn](t, Config[int]{Allocator: a, Traits: probe}, 1, 2, 3)
			if err := v.Reserve(4); err != nil {
				t.Fatalf("unexpected reserve error: %v", err)
			}
			live, blocks := probe.Live, a.Stats().LiveBlocks
			probe.Panic = tc.panic
			probe.FailAfter(len(tc.vals) - 1)
			func() {
				defer func() {
					r := recover()
					if tc.panic && r != memops.ErrInjected {
						t.Fatalf("expected injected panic, have %v", r)
					}
				}()
				if _, err := v.Insert(1, tc.vals...); !errors.Is(err, memops.ErrInjected) {
					t.Fatalf("expected ErrInjected, have %v", err)
				}
			}()
			checkContents(t, v, 1, 2, 3)
			if probe.Live != live || a.Stats().LiveBlocks != blocks || v.Cap() != 4 {
				t.Fatalf("expected no leaked elements or blocks: live %d/%d, stats=%+v",
					probe.Live, live, a.Stats())
			}
		})
	}
}

func TestFailedAllocationLeavesVector(t *testing.T) {
	a := alloc.NewTracking[int](alloc.Propagation{})
	v := build[small4](t, Config[int]{Allocator: a}, 1, 2, 3, 4)
	a.FailAfter(0)
	if err := v.Push(5); !errors.Is(err, alloc.ErrOutOfMemory) {
		t.Fatalf("expected ErrOutOfMemory, have %v", err)
	}
	checkContents(t, v, 1, 2, 3, 4)
	if !v.IsInline() {
		t.Fatalf("expected vector to stay inline")
	}
}

func TestMoveIfNoFailCopiesFallibleMoves(t *testing.T) {
	probe := memops.NewProbe[int]()
	probe.FallibleMove = true
	v := build[dyn](t, Config[int]{Traits: probe}, 1, 2)
	copies := probe.Copies
	if err := v.Push(3); err != nil {
		t.Fatalf("unexpected push error: %v", err)
	}
	if probe.Moves != 0 || probe.Copies != copies+3 {
		t.Fatalf("expected reallocation by copy, have %d moves, %d copies", probe.Moves, probe.Copies-copies)
	}
}

func TestEraseMiddleRange(t *testing.T) {
	probe := memops.NewProbe[int]()
	v := build[dyn](t, Config[int]{Traits: probe}, 0, 1, 2, 3, 4, 5, 6, 7, 8)
	if pos := v.EraseRange(1, 3); pos != 1 {
		t.Fatalf("expected erase to return 1, have %d", pos)
	}
	checkContents(t, v, 0, 3, 4, 5, 6, 7, 8)
	if probe.Destroys != 2 || probe.Live != 7 {
		t.Fatalf("expected two destroyed elements, have %d (live %d)", probe.Destroys, probe.Live)
	}
	v.Erase(v.Len() - 1)
	v.PopBack()
	checkContents(t, v, 0, 3, 4, 5, 6)
	expectPanic(t, ErrIndexOutOfBounds, func() { v.EraseRange(3, 9) })
}

func TestStaticVectorCapacity(t *testing.T) {
	v := build[stat5](t, Config[int]{}, 1, 2, 3, 4, 5)
	if !v.Full() || v.Available() != 0 || v.StaticCapacity() != 5 || v.MaxSize() != 5 {
		t.Fatalf("expected full static vector of 5, available=%d", v.Available())
	}
	expectPanic(t, storage.ErrCapacityExceeded, func() { _ = v.Push(6) })
	expectPanic(t, storage.ErrCapacityExceeded, func() { _ = v.Reserve(6) })
	checkContents(t, v, 1, 2, 3, 4, 5)
	if d := build[dyn](t, Config[int]{}); d.StaticCapacity() != 0 {
		t.Fatalf("expected no static capacity for dynamic vectors")
	}
}

func TestAccessAndIteration(t *testing.T) {
	v := build[small4](t, Config[int]{}, 10, 20, 30)
	if v.Front() != 10 || v.Back() != 30 || v.At(1) != 20 {
		t.Fatalf("unexpected element access")
	}
	if i := v.IndexOf(v.Nth(2)); i != 2 {
		t.Fatalf("expected IndexOf(Nth(2)) == 2, have %d", i)
	}
	*v.Nth(0) = 11
	if got := slices.Collect(v.Values()); !slices.Equal(got, []int{11, 20, 30}) {
		t.Fatalf("unexpected values %v", got)
	}
	var back []int
	for i, x := range v.Backward() {
		if v.At(i) != x {
			t.Fatalf("backward iteration out of step at %d", i)
		}
		back = append(back, x)
	}
	if !slices.Equal(back, []int{30, 20, 11}) {
		t.Fatalf("unexpected backward order %v", back)
	}
	expectPanic(t, ErrIndexOutOfBounds, func() { v.At(3) })
}

func TestEraseIf(t *testing.T) {
	probe := memops.NewProbe[int]()
	v := build[dyn](t, Config[int]{Traits: probe}, 1, 2, 3, 4, 5, 6)
	if n := EraseIf(v, func(x *int) bool { return *x%2 == 0 }); n != 3 {
		t.Fatalf("expected 3 removed, have %d", n)
	}
	checkContents(t, v, 1, 3, 5)
	if probe.Live != 3 {
		t.Fatalf("expected 3 live elements, have %d", probe.Live)
	}
}

func TestEraseIfPanickingPredicate(t *testing.T) {
	v := build[dyn](t, Config[int]{}, 1, 2, 3, 4, 5)
	func() {
		defer func() { _ = recover() }()
		EraseIf(v, func(x *int) bool {
			if *x == 4 {
				panic("boom")
			}
			return *x == 2
		})
	}()
	checkContents(t, v, 1, 3, 4, 5)
}

func TestResizeAndClear(t *testing.T) {
	v := build[dyn](t, Config[int]{}, 1)
	if err := v.ResizeWith(3, 7); err != nil {
		t.Fatalf("unexpected resize error: %v", err)
	}
	checkContents(t, v, 1, 7, 7)
	c := v.Cap()
	v.Clear()
	if !v.IsEmpty() || v.Cap() != c {
		t.Fatalf("expected clear to keep capacity %d, have %d", c, v.Cap())
	}
	checkContents(t, v)
}

func TestEqualAndCompare(t *testing.T) {
	eq := func(x, y int) bool { return x == y }
	cmp := func(x, y int) int { return x - y }
	a := build[dyn](t, Config[int]{}, 1, 2, 3)
	b := build[dyn](t, Config[int]{}, 1, 2, 4)
	if Equal(a, b, eq) || Compare(a, b, cmp) >= 0 || Compare(b, a, cmp) <= 0 {
		t.Fatalf("unexpected comparison of %v and %v", a.Data(), b.Data())
	}
	b.PopBack()
	if Compare(a, b, cmp) <= 0 {
		t.Fatalf("expected longer vector to compare greater")
	}
	_ = b.Push(3)
	if !Equal(a, b, eq) || Compare(a, b, cmp) != 0 {
		t.Fatalf("expected equal vectors")
	}
}

func TestNewOfAndFrom(t *testing.T) {
	v, err := NewOf[int, small4](Config[int]{}, 1, 2, 3)
	if err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	checkContents(t, v, 1, 2, 3)
	if !v.IsInline() {
		t.Fatalf("expected three elements to stay inline")
	}
	w, err := NewFrom[int, dyn](Config[int]{}, slices.Values([]int{4, 5}))
	if err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	checkContents(t, w, 4, 5)
	probe := memops.NewProbe[int]()
	probe.FailAfter(1)
	if x, err := NewOf[int, dyn](Config[int]{Traits: probe}, 1, 2, 3); !errors.Is(err, memops.ErrInjected) || x != nil {
		t.Fatalf("expected ErrInjected and no vector, have %v", err)
	}
	if probe.Live != 0 {
		t.Fatalf("expected no live elements, have %d", probe.Live)
	}
	tr := alloc.NewTracking[int](alloc.Propagation{})
	tr.FailAfter(0)
	if x, err := NewOf[int, dyn](Config[int]{Allocator: tr}, 1, 2); !errors.Is(err, alloc.ErrOutOfMemory) || x != nil {
		t.Fatalf("expected ErrOutOfMemory and no vector, have %v", err)
	}
	if st := tr.Stats(); st.LiveSlots != 0 {
		t.Fatalf("expected no live slots, have %d", st.LiveSlots)
	}
	expectPanic(t, storage.ErrCapacityExceeded, func() { _, _ = NewOf[int, stat5](Config[int]{}, seq(0, 6)...) })
}

func TestNewMoved(t *testing.T) {
	src := build[dyn](t, Config[int]{}, 1, 2, 3)
	data := src.Nth(0)
	v, err := NewMoved(src, nil)
	if err != nil {
		t.Fatalf("unexpected move error: %v", err)
	}
	checkContents(t, v, 1, 2, 3)
	checkContents(t, src)
	if v.Nth(0) != data {
		t.Fatalf("expected the block to be taken over")
	}
	probe := memops.NewProbe[int]()
	other := build[dyn](t, Config[int]{Traits: probe}, 1, 2, 3)
	tr := alloc.NewTracking[int](alloc.Propagation{})
	moves := probe.Moves
	w, err := NewMoved[int, dyn](other, tr)
	if err != nil {
		t.Fatalf("unexpected move error: %v", err)
	}
	checkContents(t, w, 1, 2, 3)
	checkContents(t, other)
	if probe.Moves-moves != 3 || w.Allocator() != alloc.Allocator[int](tr) {
		t.Fatalf("expected 3 element moves into the given allocator, have %d", probe.Moves-moves)
	}
	if probe.Live != 3 || tr.Stats().LiveSlots < 3 {
		t.Fatalf("unexpected bookkeeping: live=%d slots=%d", probe.Live, tr.Stats().LiveSlots)
	}
	in := build[small4](t, Config[int]{}, 7, 8)
	x, err := NewMoved(in, nil)
	if err != nil {
		t.Fatalf("unexpected move error: %v", err)
	}
	checkContents(t, x, 7, 8)
	if !x.IsInline() {
		t.Fatalf("expected inline elements to stay inline")
	}
}
