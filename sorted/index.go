package sorted

import (
	"fmt"
	"iter"
	"sort"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/storage"
	"github.com/npillmayer/flat/vector"
)

// Index is a sorted vector of elements V with keys K, using storage S
// through P (which is *S). An Index must not be copied by value.
type Index[K, V, S any, P storage.Ptr[V, S]] struct {
	vec    vector.Vector[V, S, P]
	cmp    func(a, b K) int
	keyOf  func(v *V) K
	policy Policy
}

// New creates an empty index.
func New[K, V, S any, P storage.Ptr[V, S]](cfg Config[K, V]) (*Index[K, V, S, P], error) {
	x := &Index[K, V, S, P]{}
	if err := x.Init(cfg); err != nil {
		return nil, err
	}
	return x, nil
}

// NewFrom creates an index holding copies of vals, see InsertValues. On
// failure, no memory is held and no element is alive.
func NewFrom[K, V, S any, P storage.Ptr[V, S]](cfg Config[K, V], vals ...V) (*Index[K, V, S, P], error) {
	x, err := New[K, V, S, P](cfg)
	if err != nil {
		return nil, err
	}
	if err := x.fill(vals); err != nil {
		return nil, err
	}
	return x, nil
}

func (x *Index[K, V, S, P]) fill(vals []V) error {
	if err := x.InsertValues(vals...); err != nil {
		x.Reset()
		return err
	}
	return nil
}

// Init configures an empty index.
func (x *Index[K, V, S, P]) Init(cfg Config[K, V]) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	if err := x.vec.Init(cfg.vectorConfig()); err != nil {
		return err
	}
	x.cmp, x.keyOf, x.policy = cfg.Compare, cfg.KeyOf, cfg.Policy
	return nil
}

// Policy returns the key policy of x.
func (x *Index[K, V, S, P]) Policy() Policy { return x.policy }

// KeyAt returns the key of the element at position i.
func (x *Index[K, V, S, P]) KeyAt(i int) K {
	return x.keyOf(x.vec.Nth(i))
}

// Compare returns the key comparison of x.
func (x *Index[K, V, S, P]) Compare() func(a, b K) int { return x.cmp }

// --- Lookup -----------------------------------------------------------------
//
// A probe reports how a key relates to the searched one: negative if the key
// orders before it, 0 if equal, positive if after.

// LowerBoundFunc returns the position of the first element whose key does
// not order before the probed one.
func (x *Index[K, V, S, P]) LowerBoundFunc(probe func(k K) int) int {
	data := x.vec.Data()
	return sort.Search(len(data), func(i int) bool {
		return probe(x.keyOf(&data[i])) >= 0
	})
}

// UpperBoundFunc returns the position of the first element whose key orders
// after the probed one.
func (x *Index[K, V, S, P]) UpperBoundFunc(probe func(k K) int) int {
	data := x.vec.Data()
	return sort.Search(len(data), func(i int) bool {
		return probe(x.keyOf(&data[i])) > 0
	})
}

// EqualRangeFunc returns the range [lo,hi) of elements with keys equal to
// the probed one.
func (x *Index[K, V, S, P]) EqualRangeFunc(probe func(k K) int) (lo, hi int) {
	data := x.vec.Data()
	lo = x.LowerBoundFunc(probe)
	if lo == len(data) || probe(x.keyOf(&data[lo])) != 0 {
		return lo, lo
	}
	if x.policy == Unique {
		return lo, lo + 1
	}
	rest := data[lo+1:]
	return lo, lo + 1 + sort.Search(len(rest), func(i int) bool {
		return probe(x.keyOf(&rest[i])) > 0
	})
}

// FindFunc returns the position of the first element with a key equal to
// the probed one. If there is none, it returns Len() and false.
func (x *Index[K, V, S, P]) FindFunc(probe func(k K) int) (int, bool) {
	lo := x.LowerBoundFunc(probe)
	if lo < x.vec.Len() && probe(x.KeyAt(lo)) == 0 {
		return lo, true
	}
	return x.vec.Len(), false
}

// CountFunc returns the number of elements with a key equal to the probed
// one.
func (x *Index[K, V, S, P]) CountFunc(probe func(k K) int) int {
	lo, hi := x.EqualRangeFunc(probe)
	return hi - lo
}

// ContainsFunc reports whether an element with a key equal to the probed one
// exists.
func (x *Index[K, V, S, P]) ContainsFunc(probe func(k K) int) bool {
	_, ok := x.FindFunc(probe)
	return ok
}

func (x *Index[K, V, S, P]) probe(k K) func(K) int {
	return func(e K) int { return x.cmp(e, k) }
}

// LowerBound returns the position of the first element with a key not less
// than k.
func (x *Index[K, V, S, P]) LowerBound(k K) int { return x.LowerBoundFunc(x.probe(k)) }

// UpperBound returns the position of the first element with a key greater
// than k.
func (x *Index[K, V, S, P]) UpperBound(k K) int { return x.UpperBoundFunc(x.probe(k)) }

// EqualRange returns the range of elements with key k.
func (x *Index[K, V, S, P]) EqualRange(k K) (lo, hi int) { return x.EqualRangeFunc(x.probe(k)) }

// Find returns the position of the first element with key k, or Len() and
// false.
func (x *Index[K, V, S, P]) Find(k K) (int, bool) { return x.FindFunc(x.probe(k)) }

// Count returns the number of elements with key k.
func (x *Index[K, V, S, P]) Count(k K) int { return x.CountFunc(x.probe(k)) }

// Contains reports whether an element with key k exists.
func (x *Index[K, V, S, P]) Contains(k K) bool { return x.ContainsFunc(x.probe(k)) }

// Lookups with a query of a type other than K. cmp compares a key against
// the query.

func asProbe[K, Q any](q Q, cmp func(k K, q Q) int) func(K) int {
	return func(k K) int { return cmp(k, q) }
}

// FindAs is Find for a query q of type Q.
func FindAs[K, V, S any, P storage.Ptr[V, S], Q any](x *Index[K, V, S, P], q Q, cmp func(k K, q Q) int) (int, bool) {
	return x.FindFunc(asProbe(q, cmp))
}

// ContainsAs is Contains for a query q of type Q.
func ContainsAs[K, V, S any, P storage.Ptr[V, S], Q any](x *Index[K, V, S, P], q Q, cmp func(k K, q Q) int) bool {
	return x.ContainsFunc(asProbe(q, cmp))
}

// CountAs is Count for a query q of type Q.
func CountAs[K, V, S any, P storage.Ptr[V, S], Q any](x *Index[K, V, S, P], q Q, cmp func(k K, q Q) int) int {
	return x.CountFunc(asProbe(q, cmp))
}

// LowerBoundAs is LowerBound for a query q of type Q.
func LowerBoundAs[K, V, S any, P storage.Ptr[V, S], Q any](x *Index[K, V, S, P], q Q, cmp func(k K, q Q) int) int {
	return x.LowerBoundFunc(asProbe(q, cmp))
}

// UpperBoundAs is UpperBound for a query q of type Q.
func UpperBoundAs[K, V, S any, P storage.Ptr[V, S], Q any](x *Index[K, V, S, P], q Q, cmp func(k K, q Q) int) int {
	return x.UpperBoundFunc(asProbe(q, cmp))
}

// EqualRangeAs is EqualRange for a query q of type Q.
func EqualRangeAs[K, V, S any, P storage.Ptr[V, S], Q any](x *Index[K, V, S, P], q Q, cmp func(k K, q Q) int) (int, int) {
	return x.EqualRangeFunc(asProbe(q, cmp))
}

// --- Capacity and access ----------------------------------------------------

func (x *Index[K, V, S, P]) Len() int            { return x.vec.Len() }
func (x *Index[K, V, S, P]) IsEmpty() bool       { return x.vec.IsEmpty() }
func (x *Index[K, V, S, P]) Cap() int            { return x.vec.Cap() }
func (x *Index[K, V, S, P]) MaxSize() int        { return x.vec.MaxSize() }
func (x *Index[K, V, S, P]) Available() int      { return x.vec.Available() }
func (x *Index[K, V, S, P]) Full() bool          { return x.vec.Full() }
func (x *Index[K, V, S, P]) StaticCapacity() int { return x.vec.StaticCapacity() }
func (x *Index[K, V, S, P]) IsInline() bool      { return x.vec.IsInline() }
func (x *Index[K, V, S, P]) Reserve(n int) error { return x.vec.Reserve(n) }
func (x *Index[K, V, S, P]) ShrinkToFit() error  { return x.vec.ShrinkToFit() }

// Allocator returns the allocator of the underlying vector.
func (x *Index[K, V, S, P]) Allocator() alloc.Allocator[V] { return x.vec.Allocator() }

// Data returns the elements in key order. Keys must not be modified.
func (x *Index[K, V, S, P]) Data() []V { return x.vec.Data() }

// At returns the element at position i.
func (x *Index[K, V, S, P]) At(i int) V { return x.vec.At(i) }

// Nth returns a pointer to the element at position i. The element's key must
// not be modified through it.
func (x *Index[K, V, S, P]) Nth(i int) *V { return x.vec.Nth(i) }

// IndexOf returns the position of the element p points to.
func (x *Index[K, V, S, P]) IndexOf(p *V) int { return x.vec.IndexOf(p) }

func (x *Index[K, V, S, P]) Front() V { return x.vec.Front() }
func (x *Index[K, V, S, P]) Back() V  { return x.vec.Back() }

// All iterates over positions and elements in key order.
func (x *Index[K, V, S, P]) All() iter.Seq2[int, V] { return x.vec.All() }

// Backward iterates over positions and elements in reverse key order.
func (x *Index[K, V, S, P]) Backward() iter.Seq2[int, V] { return x.vec.Backward() }

// Values iterates over the elements in key order.
func (x *Index[K, V, S, P]) Values() iter.Seq[V] { return x.vec.Values() }

// Contiguous implements memops.Contiguous.
func (x *Index[K, V, S, P]) Contiguous() []V { return x.vec.Data() }

// Check validates the vector invariants and the key order.
func (x *Index[K, V, S, P]) Check() error {
	if err := x.vec.Check(); err != nil {
		return err
	}
	data := x.vec.Data()
	for i := 1; i < len(data); i++ {
		c := x.cmp(x.keyOf(&data[i-1]), x.keyOf(&data[i]))
		if c > 0 || c == 0 && x.policy == Unique {
			return fmt.Errorf("%w: keys at %d and %d under %v policy", ErrNotSorted, i-1, i, x.policy)
		}
	}
	return nil
}
