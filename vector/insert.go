package vector

import (
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/storage"
)

// grownCap returns the capacity for inserting k more elements.
func (v *Vector[T, S, P]) grownCap(k int) (int, error) {
	st := v.st()
	if st.Static() {
		msg := fmt.Sprintf("insert of %d into static vector holding %d/%d", k, v.size, st.Cap())
		assert(false, storage.ErrCapacityExceeded, msg)
		return 0, fmt.Errorf("%w: %s", storage.ErrCapacityExceeded, msg)
	}
	maxSize := st.MaxCap()
	if k > maxSize-v.size {
		return 0, fmt.Errorf("%w: %d + %d > %d", ErrLengthExceeded, v.size, k, maxSize)
	}
	c, newCap := st.Cap(), maxSize
	if c <= maxSize/2 {
		newCap = 2 * c
	}
	return max(newCap, v.size+k), nil
}

// insertWith opens a gap of k elements at pos and lets build construct them.
// build receives k uninitialized slots and must leave them uninitialized
// when it fails.
//
// With sufficient capacity the new elements are built behind the last
// element and rotated into place. Otherwise they are built into a fresh
// block, followed by the elements before and after pos. The old block is
// given up only after everything succeeded.
func (v *Vector[T, S, P]) insertWith(pos, k int, build func(dst []T) error) error {
	return v.insertUndo(pos, k, build, nil)
}

// insertUndo is insertWith, with undo replacing the destruction of the built
// elements if a later step fails. undo must leave the slots uninitialized.
func (v *Vector[T, S, P]) insertUndo(pos, k int, build func(dst []T) error, undo func(dst []T)) (err error) {
	assert(pos >= 0 && pos <= v.size, ErrIndexOutOfBounds, fmt.Sprintf("insert at %d into %d", pos, v.size))
	if k == 0 {
		return nil
	}
	st, tr := v.st(), v.tr()
	need := v.size + k
	if need <= st.Cap() {
		slots := st.Slots()
		if err = build(slots[v.size:need]); err != nil {
			return err
		}
		memops.Rotate(slots[pos:need], k)
		v.size = need
		return nil
	}
	newCap, err := v.grownCap(k)
	if err != nil {
		return err
	}
	block, err := st.NewBlock(newCap)
	if err != nil {
		return err
	}
	lo, hi, done := pos, pos, false // [lo,hi) of block is constructed
	defer func() {
		if !done {
			if undo != nil {
				undo(block[pos:hi])
			} else {
				memops.Destroy(tr, block[pos:hi])
			}
			memops.Destroy(tr, block[lo:pos])
			st.FreeBlock(block)
		}
	}()
	if err = build(block[pos : pos+k]); err != nil {
		return err
	}
	hi = pos + k
	old := st.Slots()
	if err = memops.UninitializedMoveIfNoFail(tr, old[:pos], block[:pos]); err != nil {
		return err
	}
	lo = 0
	if err = memops.UninitializedMoveIfNoFail(tr, old[pos:v.size], block[pos+k:need]); err != nil {
		return err
	}
	memops.Destroy(tr, old[:v.size])
	done = true
	st.Adopt(block)
	debugf("vector: grew to capacity %d for size %d", len(block), need)
	v.size = need
	return nil
}

// Push appends a copy of x.
func (v *Vector[T, S, P]) Push(x T) error {
	_, err := v.Insert(v.size, x)
	return err
}

// EmplaceBack appends an element constructed in place by ctor.
func (v *Vector[T, S, P]) EmplaceBack(ctor func(p *T) error) error {
	_, err := v.Emplace(v.size, ctor)
	return err
}

// Insert inserts copies of vals before pos and returns the position of the
// first inserted element. vals may alias the vector's own elements.
func (v *Vector[T, S, P]) Insert(pos int, vals ...T) (int, error) {
	tr := v.tr()
	err := v.insertWith(pos, len(vals), func(dst []T) error {
		return memops.UninitializedCopy(tr, vals, dst)
	})
	return pos, err
}

// InsertN inserts n copies of x before pos.
func (v *Vector[T, S, P]) InsertN(pos, n int, x T) (int, error) {
	assert(n >= 0, ErrIndexOutOfBounds, "negative insert count")
	tr := v.tr()
	err := v.insertWith(pos, n, func(dst []T) error {
		return memops.UninitializedFill(tr, dst, x)
	})
	return pos, err
}

// InsertSeq inserts the elements of seq before pos. The sequence is drained
// before the vector is touched.
func (v *Vector[T, S, P]) InsertSeq(pos int, seq iter.Seq[T]) (int, error) {
	return v.Insert(pos, slices.Collect(seq)...)
}

// InsertOwned moves *x into the vector before pos. On success *x is left in
// its moved-from state.
func (v *Vector[T, S, P]) InsertOwned(pos int, x *T) (int, error) {
	tr := v.tr()
	err := v.insertWith(pos, 1, func(dst []T) error {
		return memops.Emplace(&dst[0], func(p *T) error { return tr.Move(p, x) })
	})
	return pos, err
}

// InsertRelocated inserts *x before pos by bitwise relocation, without
// calling any traits hook. The vector takes over the element and *x is
// zeroed. On failure *x is untouched.
func (v *Vector[T, S, P]) InsertRelocated(pos int, x *T) (int, error) {
	err := v.insertUndo(pos, 1, func(dst []T) error {
		dst[0] = *x
		return nil
	}, func(dst []T) {
		clear(dst)
	})
	if err == nil {
		var zero T
		*x = zero
	}
	return pos, err
}

// Emplace inserts an element constructed by ctor before pos. ctor receives
// an uninitialized slot; if it fails the slot must stay uninitialized.
func (v *Vector[T, S, P]) Emplace(pos int, ctor func(p *T) error) (int, error) {
	err := v.insertWith(pos, 1, func(dst []T) error {
		return memops.Emplace(&dst[0], ctor)
	})
	return pos, err
}

// AppendSegments appends copies of all elements of src.
func (v *Vector[T, S, P]) AppendSegments(src memops.Segmented[T]) error {
	tr := v.tr()
	return v.insertWith(v.size, memops.SegmentsLen(src), func(dst []T) error {
		return memops.UninitializedCopySegments(tr, src, dst)
	})
}

// Reserve ensures a capacity of at least n.
func (v *Vector[T, S, P]) Reserve(n int) error {
	st := v.st()
	if n <= st.Cap() {
		return nil
	}
	if !st.Static() && n > st.MaxCap() {
		return fmt.Errorf("%w: reserve %d > %d", ErrLengthExceeded, n, st.MaxCap())
	}
	return st.Acquire(n, v.size, v.tr())
}

// ShrinkToFit reduces the capacity towards Len(). A small vector moves back
// to its inline buffer when the elements fit.
func (v *Vector[T, S, P]) ShrinkToFit() error {
	return v.st().Shrink(v.size, v.tr())
}

// Resize grows the vector with zero values or truncates it to n elements.
func (v *Vector[T, S, P]) Resize(n int) error {
	var zero T
	return v.ResizeWith(n, zero)
}

// ResizeWith grows the vector with copies of x or truncates it to n elements.
func (v *Vector[T, S, P]) ResizeWith(n int, x T) error {
	assert(n >= 0, ErrIndexOutOfBounds, "negative size")
	if n < v.size {
		v.EraseRange(n, v.size)
		return nil
	}
	_, err := v.InsertN(v.size, n-v.size, x)
	return err
}
