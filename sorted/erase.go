package sorted

import (
	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/storage"
	"github.com/npillmayer/flat/vector"
)

// Erase removes the element at pos and returns the position of its
// successor.
func (x *Index[K, V, S, P]) Erase(pos int) int { return x.vec.Erase(pos) }

// EraseRange removes the elements of [first,last).
func (x *Index[K, V, S, P]) EraseRange(first, last int) int { return x.vec.EraseRange(first, last) }

// EraseKey removes all elements with key k and returns their number.
func (x *Index[K, V, S, P]) EraseKey(k K) int {
	lo, hi := x.EqualRange(k)
	x.vec.EraseRange(lo, hi)
	return hi - lo
}

// Clear removes all elements. Capacity is kept.
func (x *Index[K, V, S, P]) Clear() { x.vec.Clear() }

// Reset removes all elements and gives back heap memory.
func (x *Index[K, V, S, P]) Reset() { x.vec.Reset() }

// EraseIf removes all elements for which pred holds and returns their
// number.
func EraseIf[K, V, S any, P storage.Ptr[V, S]](x *Index[K, V, S, P], pred func(v *V) bool) int {
	return vector.EraseIf(&x.vec, pred)
}

// Swap exchanges x and y, see Index.Swap.
func Swap[K, V, S any, P storage.Ptr[V, S]](x, y *Index[K, V, S, P]) { x.Swap(y) }

// Swap exchanges contents, comparison, key projection and policy of x and
// other. See vector.Vector.Swap for the allocator requirements.
func (x *Index[K, V, S, P]) Swap(other *Index[K, V, S, P]) {
	x.vec.Swap(&other.vec)
	x.cmp, other.cmp = other.cmp, x.cmp
	x.keyOf, other.keyOf = other.keyOf, x.keyOf
	x.policy, other.policy = other.policy, x.policy
}

// Assign makes x a copy of src, including its comparison, key projection and
// policy. See vector.Vector.Assign.
func (x *Index[K, V, S, P]) Assign(src *Index[K, V, S, P]) error {
	if x == src {
		return nil
	}
	if err := x.vec.Assign(&src.vec); err != nil {
		return err
	}
	x.cmp, x.keyOf, x.policy = src.cmp, src.keyOf, src.policy
	return nil
}

// MoveFrom moves the contents of src into x, see vector.Vector.MoveFrom.
func (x *Index[K, V, S, P]) MoveFrom(src *Index[K, V, S, P]) error {
	if x == src {
		return nil
	}
	if err := x.vec.MoveFrom(&src.vec); err != nil {
		return err
	}
	x.cmp, x.keyOf, x.policy = src.cmp, src.keyOf, src.policy
	return nil
}

// Clone returns a copy of x, using the allocator x's allocator selects for
// copies.
func (x *Index[K, V, S, P]) Clone() (*Index[K, V, S, P], error) {
	return x.CloneWith(alloc.ForCopy(x.vec.Allocator()))
}

// CloneWith returns a copy of x using allocator a.
func (x *Index[K, V, S, P]) CloneWith(a alloc.Allocator[V]) (*Index[K, V, S, P], error) {
	c := &Index[K, V, S, P]{}
	if err := x.cloneInto(c, a); err != nil {
		return nil, err
	}
	return c, nil
}

func (x *Index[K, V, S, P]) cloneInto(dst *Index[K, V, S, P], a alloc.Allocator[V]) error {
	if err := x.vec.CloneInto(&dst.vec, a); err != nil {
		return err
	}
	dst.cmp, dst.keyOf, dst.policy = x.cmp, x.keyOf, x.policy
	return nil
}
