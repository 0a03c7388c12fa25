package vector

import (
	"fmt"

	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/storage"
)

// Erase removes the element at pos and returns the position of the element
// that followed it.
func (v *Vector[T, S, P]) Erase(pos int) int {
	assert(pos >= 0 && pos < v.size, ErrIndexOutOfBounds, fmt.Sprintf("erase %d of %d", pos, v.size))
	return v.EraseRange(pos, pos+1)
}

// EraseRange removes the elements of [first,last) and returns first.
func (v *Vector[T, S, P]) EraseRange(first, last int) int {
	assert(first >= 0 && first <= last && last <= v.size, ErrIndexOutOfBounds,
		fmt.Sprintf("erase [%d,%d) of %d", first, last, v.size))
	if first == last {
		return first
	}
	slots := v.st().Slots()
	memops.Destroy(v.tr(), slots[first:last])
	n := memops.Relocate(slots[first:], slots[last:v.size])
	clear(slots[first+n : v.size])
	v.size -= last - first
	return first
}

// PopBack removes the last element.
func (v *Vector[T, S, P]) PopBack() {
	assert(v.size > 0, ErrIndexOutOfBounds, "pop from empty vector")
	v.EraseRange(v.size-1, v.size)
}

// Clear destroys all elements. Capacity is kept.
func (v *Vector[T, S, P]) Clear() {
	memops.Destroy(v.tr(), v.st().Slots()[:v.size])
	v.size = 0
}

// EraseIf removes all elements for which pred holds, keeping the order of
// the others, and returns the number removed. If pred panics, the elements
// examined so far stay removed or kept and the vector remains valid.
func EraseIf[T, S any, P storage.Ptr[T, S]](v *Vector[T, S, P], pred func(x *T) bool) int {
	slots := v.st().Slots()
	tr := v.tr()
	n := v.size
	w, i := 0, 0
	defer func() {
		if w < i {
			k := memops.Relocate(slots[w:], slots[i:n])
			clear(slots[w+k : n])
		}
		v.size = w + (n - i)
	}()
	var zero T
	for ; i < n; i++ {
		if pred(&slots[i]) {
			memops.DestroyAt(tr, &slots[i])
			continue
		}
		if w != i {
			slots[w] = slots[i]
			slots[i] = zero
		}
		w++
	}
	return n - w
}
