package vector

import (
	"fmt"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/storage"
)

// Assign makes v a copy of src. If src's allocator propagates on copy
// assignment, v adopts it, releasing its own memory first when the
// allocators differ.
//
// When v's capacity suffices, its live elements are assigned over and the
// remainder constructed or destroyed; a failure then leaves v valid but
// partially assigned. Otherwise the copy is built in a new block and v is
// unchanged on failure.
func (v *Vector[T, S, P]) Assign(src *Vector[T, S, P]) error {
	if v == src {
		return nil
	}
	st := v.st()
	if !st.Static() {
		theirs := src.st().Allocator()
		if theirs.Propagation().OnCopy {
			if !st.Allocator().Equal(theirs) {
				debugf("vector: copy assignment releases storage for the source allocator")
				v.Clear()
				st.Release()
			}
			st.SetAllocator(theirs)
		}
	}
	return v.assignElements(src.Data())
}

func (v *Vector[T, S, P]) assignElements(data []T) error {
	st, tr := v.st(), v.tr()
	n := len(data)
	if n <= st.Cap() {
		slots := st.Slots()
		for i := range min(v.size, n) {
			if err := tr.Assign(&slots[i], &data[i]); err != nil {
				return err
			}
		}
		if n > v.size {
			if err := memops.UninitializedCopy(tr, data[v.size:], slots[v.size:n]); err != nil {
				return err
			}
		} else {
			memops.Destroy(tr, slots[n:v.size])
		}
		v.size = n
		return nil
	}
	if n > st.MaxCap() {
		return fmt.Errorf("%w: assign %d > %d", ErrLengthExceeded, n, st.MaxCap())
	}
	block, err := st.NewBlock(n)
	if err != nil {
		return err
	}
	if err := memops.UninitializedCopy(tr, data, block[:n]); err != nil {
		st.FreeBlock(block)
		return err
	}
	v.Clear()
	st.Adopt(block)
	v.size = n
	return nil
}

// MoveFrom moves the contents of src into v and leaves src empty.
//
// If src holds a heap block and its allocator propagates on move assignment
// or equals v's, v takes over the block in O(1). Otherwise the elements are
// moved one by one; on failure v is valid and src keeps its size, though
// some of its elements may be in their moved-from state.
func (v *Vector[T, S, P]) MoveFrom(src *Vector[T, S, P]) error {
	if v == src {
		return nil
	}
	propagate := false
	if a := src.Allocator(); a != nil {
		propagate = a.Propagation().OnMove
	}
	return v.moveFrom(src, propagate)
}

// moveFrom is MoveFrom, adopting src's allocator if propagate is set.
func (v *Vector[T, S, P]) moveFrom(src *Vector[T, S, P], propagate bool) error {
	st, sst, tr := v.st(), src.st(), v.tr()
	if !st.Static() {
		theirs := sst.Allocator()
		if !sst.IsInline() && (propagate || st.Allocator().Equal(theirs)) {
			v.Clear()
			st.Release()
			if propagate {
				st.SetAllocator(theirs)
			}
			st.Exchange(sst, 0, src.size)
			v.size, src.size = src.size, 0
			debugf("vector: move assignment took over a block of %d", v.Cap())
			return nil
		}
		if propagate && !st.Allocator().Equal(theirs) {
			v.Clear()
			st.Release()
			st.SetAllocator(theirs)
		}
	}
	v.Clear()
	n := src.size
	if err := v.Reserve(n); err != nil {
		return err
	}
	data := src.Data()
	if err := memops.UninitializedMove(tr, data, st.Slots()[:n]); err != nil {
		return err
	}
	v.size = n
	memops.Destroy(src.tr(), data)
	src.size = 0
	return nil
}

// Swap exchanges the contents of v and other. Allocators are exchanged if
// they propagate on swap; otherwise they must compare equal. Heap blocks are
// exchanged in O(1), inline elements are relocated. Swap never fails.
func (v *Vector[T, S, P]) Swap(other *Vector[T, S, P]) {
	if v == other {
		return
	}
	st, ost := v.st(), other.st()
	a, b := st.Allocator(), ost.Allocator()
	dynamic := !st.Static()
	if dynamic {
		assert(alloc.Compatible(a, b), ErrIncompatibleAllocators, "swap of vectors with unequal allocators")
	}
	st.Exchange(ost, v.size, other.size)
	if dynamic && a.Propagation().OnSwap {
		st.SetAllocator(b)
		ost.SetAllocator(a)
	}
	v.size, other.size = other.size, v.size
}

// Swap exchanges the contents of two vectors, see Vector.Swap.
func Swap[T, S any, P storage.Ptr[T, S]](a, b *Vector[T, S, P]) {
	a.Swap(b)
}

// Clone returns a copy of v using the allocator v's allocator selects for
// copies (see alloc.ForCopy).
func (v *Vector[T, S, P]) Clone() (*Vector[T, S, P], error) {
	return v.CloneWith(alloc.ForCopy(v.Allocator()))
}

// CloneWith returns a copy of v using allocator a.
func (v *Vector[T, S, P]) CloneWith(a alloc.Allocator[T]) (*Vector[T, S, P], error) {
	c := &Vector[T, S, P]{}
	if err := v.CloneInto(c, a); err != nil {
		return nil, err
	}
	return c, nil
}

// CloneInto initializes the empty vector dst as a copy of v using allocator
// a and v's traits. On failure dst is left empty.
func (v *Vector[T, S, P]) CloneInto(dst *Vector[T, S, P], a alloc.Allocator[T]) error {
	if err := dst.Init(Config[T]{Allocator: a, Traits: v.traits}); err != nil {
		return err
	}
	if err := dst.assignElements(v.Data()); err != nil {
		dst.st().Release()
		return err
	}
	return nil
}

// Reset destroys all elements and gives back heap memory.
func (v *Vector[T, S, P]) Reset() {
	v.Clear()
	v.st().Release()
}
