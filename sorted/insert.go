package sorted

import (
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/vector"
)

// insertPos returns where an element with key k goes. Under Unique, if an
// element with key k exists, it returns its position and false.
func (x *Index[K, V, S, P]) insertPos(k K) (int, bool) {
	if x.policy == Multi {
		return x.UpperBound(k), true
	}
	lo := x.LowerBound(k)
	if lo < x.vec.Len() && x.cmp(x.KeyAt(lo), k) == 0 {
		return lo, false
	}
	return lo, true
}

// hintPos is insertPos, trying position hint first. A hint is taken if k
// fits between the hint's neighbors: strictly under Unique, allowing equal
// neighbors under Multi.
func (x *Index[K, V, S, P]) hintPos(hint int, k K) (int, bool) {
	n := x.vec.Len()
	assert(hint >= 0 && hint <= n, vector.ErrIndexOutOfBounds, fmt.Sprintf("hint %d of %d", hint, n))
	limit := 0
	if x.policy == Unique {
		limit = -1
	}
	before := hint == 0 || x.cmp(x.KeyAt(hint-1), k) <= limit
	after := hint == n || x.cmp(k, x.KeyAt(hint)) <= limit
	if before && after {
		return hint, true
	}
	return x.insertPos(k)
}

// Insert inserts a copy of v. It returns the position of the inserted
// element and true, or, under Unique, the position of the element with an
// equal key and false.
func (x *Index[K, V, S, P]) Insert(v V) (int, bool, error) {
	pos, ok := x.insertPos(x.keyOf(&v))
	return x.insertAt(pos, ok, v)
}

// InsertHint inserts a copy of v, placing it at hint if that keeps the
// order. See Insert.
func (x *Index[K, V, S, P]) InsertHint(hint int, v V) (int, bool, error) {
	pos, ok := x.hintPos(hint, x.keyOf(&v))
	return x.insertAt(pos, ok, v)
}

func (x *Index[K, V, S, P]) insertAt(pos int, ok bool, v V) (int, bool, error) {
	if !ok {
		return pos, false, nil
	}
	if _, err := x.vec.Insert(pos, v); err != nil {
		return pos, false, err
	}
	return pos, true, nil
}

// Emplace constructs an element with ctor and inserts it like Insert. The
// element is built before its key is known and relocated into place; under
// Unique it is destroyed again if its key is present.
func (x *Index[K, V, S, P]) Emplace(ctor func(v *V) error) (int, bool, error) {
	return x.emplace(-1, ctor)
}

// EmplaceHint is Emplace with an insertion hint, see InsertHint.
func (x *Index[K, V, S, P]) EmplaceHint(hint int, ctor func(v *V) error) (int, bool, error) {
	return x.emplace(hint, ctor)
}

func (x *Index[K, V, S, P]) emplace(hint int, ctor func(v *V) error) (int, bool, error) {
	var tmp V
	if err := memops.Emplace(&tmp, ctor); err != nil {
		return x.vec.Len(), false, err
	}
	k := x.keyOf(&tmp)
	var pos int
	var ok bool
	if hint < 0 {
		pos, ok = x.insertPos(k)
	} else {
		pos, ok = x.hintPos(hint, k)
	}
	if ok {
		_, err := x.vec.InsertRelocated(pos, &tmp)
		if err == nil {
			return pos, true, nil
		}
		memops.DestroyAt(x.vec.Traits(), &tmp)
		return pos, false, err
	}
	memops.DestroyAt(x.vec.Traits(), &tmp)
	return pos, false, nil
}

// InsertValues inserts copies of vals. Under Unique, of several elements
// with equal keys the one present before, or else the first one in vals, is
// kept; values not inserted take up no capacity.
//
// All keys are compared before x changes, so a failing copy, allocation or
// comparison leaves x as it was.
func (x *Index[K, V, S, P]) InsertValues(vals ...V) error {
	if len(vals) == 0 {
		return nil
	}
	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return x.cmp(x.keyOf(&vals[a]), x.keyOf(&vals[b]))
	})
	keep := make([]V, 0, len(vals))
	at := make([]int, 0, len(vals))
	for n, i := range order {
		k := x.keyOf(&vals[i])
		if x.policy == Unique && n > 0 && x.cmp(x.keyOf(&vals[order[n-1]]), k) == 0 {
			continue
		}
		pos, ok := x.insertPos(k)
		if !ok {
			continue
		}
		keep = append(keep, vals[i])
		at = append(at, pos)
	}
	defer clear(keep)
	if len(keep) == 0 {
		return nil
	}
	n0 := x.vec.Len()
	if _, err := x.vec.Insert(n0, keep...); err != nil {
		return err
	}
	place(x.vec.Data(), n0, at)
	debugf("sorted: merged %d of %d values into %d elements", len(keep), len(vals), n0)
	return nil
}

// place moves the elements data[mid:] to their positions at, counted in
// data[:mid] and ascending, by relocating from the back.
func place[V any](data []V, mid int, at []int) {
	buf := slices.Clone(data[mid:])
	defer clear(buf)
	i, j := mid-1, len(buf)-1
	for w := len(data) - 1; j >= 0; w-- {
		if i >= at[j] {
			data[w] = data[i]
			i--
		} else {
			data[w] = buf[j]
			j--
		}
	}
}

// InsertSeq inserts the elements of seq, see InsertValues.
func (x *Index[K, V, S, P]) InsertSeq(seq iter.Seq[V]) error {
	return x.InsertValues(slices.Collect(seq)...)
}
