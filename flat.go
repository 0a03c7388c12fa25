package flat

import (
	"cmp"
	"iter"
	"slices"

	"github.com/npillmayer/flat/sorted"
	"github.com/npillmayer/flat/storage"
	"github.com/npillmayer/flat/vector"
)

// Options configure a container holding elements of type T.
type Options[T any] = vector.Config[T]

// Pair is the element type of maps.
type Pair[K, M any] = sorted.Pair[K, M]

type (
	// Vector is a growable vector in a heap block.
	Vector[T any] = vector.Vector[T, storage.Dynamic[T], *storage.Dynamic[T]]
	// SmallVector keeps up to len(B) elements inline; B must be [N]T.
	SmallVector[T, B any] = vector.Vector[T, storage.Small[T, B], *storage.Small[T, B]]
	// StaticVector holds at most len(B) elements inline; B must be [N]T.
	StaticVector[T, B any] = vector.Vector[T, storage.Static[T, B], *storage.Static[T, B]]
)

type (
	// Map is a sorted map in a heap block.
	Map[K, M any] = sorted.Map[K, M, storage.Dynamic[Pair[K, M]], *storage.Dynamic[Pair[K, M]]]
	// MultiMap is a Map admitting equal keys. Its policy is set by the
	// NewMulti... constructors.
	MultiMap[K, M any] = Map[K, M]
	// SmallMap keeps up to len(B) pairs inline; B must be [N]Pair[K, M].
	SmallMap[K, M, B any] = sorted.Map[K, M, storage.Small[Pair[K, M], B], *storage.Small[Pair[K, M], B]]
	// StaticMap holds at most len(B) pairs inline; B must be [N]Pair[K, M].
	StaticMap[K, M, B any] = sorted.Map[K, M, storage.Static[Pair[K, M], B], *storage.Static[Pair[K, M], B]]
)

type (
	// Set is a sorted set in a heap block.
	Set[K any] = sorted.Set[K, storage.Dynamic[K], *storage.Dynamic[K]]
	// MultiSet is a Set admitting equal keys. Its policy is set by the
	// NewMulti... constructors.
	MultiSet[K any] = Set[K]
	// SmallSet keeps up to len(B) keys inline; B must be [N]K.
	SmallSet[K, B any] = sorted.Set[K, storage.Small[K, B], *storage.Small[K, B]]
	// StaticSet holds at most len(B) keys inline; B must be [N]K.
	StaticSet[K, B any] = sorted.Set[K, storage.Static[K, B], *storage.Static[K, B]]
)

func options[T any](opts []Options[T]) Options[T] {
	if len(opts) > 0 {
		return opts[0]
	}
	return Options[T]{}
}

// NewVector creates an empty vector.
func NewVector[T any](opts ...Options[T]) (*Vector[T], error) {
	return vector.New[T, storage.Dynamic[T]](options(opts))
}

// NewVectorOf creates a vector holding copies of vals.
func NewVectorOf[T any](vals ...T) (*Vector[T], error) {
	return vector.NewOf[T, storage.Dynamic[T]](Options[T]{}, vals...)
}

// NewVectorFrom creates a vector holding copies of the elements of seq.
func NewVectorFrom[T any](seq iter.Seq[T], opts ...Options[T]) (*Vector[T], error) {
	return vector.NewFrom[T, storage.Dynamic[T]](options(opts), seq)
}

// NewSmallVector creates an empty small vector.
func NewSmallVector[T, B any](opts ...Options[T]) (*SmallVector[T, B], error) {
	return vector.New[T, storage.Small[T, B]](options(opts))
}

// NewSmallVectorFrom creates a small vector holding copies of the elements
// of seq.
func NewSmallVectorFrom[T, B any](seq iter.Seq[T], opts ...Options[T]) (*SmallVector[T, B], error) {
	return vector.NewFrom[T, storage.Small[T, B]](options(opts), seq)
}

// NewStaticVector creates an empty static vector. An allocator in opts is
// ignored.
func NewStaticVector[T, B any](opts ...Options[T]) (*StaticVector[T, B], error) {
	return vector.New[T, storage.Static[T, B]](options(opts))
}

// NewStaticVectorFrom creates a static vector holding copies of the
// elements of seq. It panics if they do not fit.
func NewStaticVectorFrom[T, B any](seq iter.Seq[T], opts ...Options[T]) (*StaticVector[T, B], error) {
	return vector.NewFrom[T, storage.Static[T, B]](options(opts), seq)
}

func newMap[K, M, S any, P storage.Ptr[Pair[K, M], S]](compare func(a, b K) int, policy sorted.Policy,
	seq iter.Seq[Pair[K, M]], opts []Options[Pair[K, M]]) (*sorted.Map[K, M, S, P], error) {
	if compare == nil {
		T().Errorf("flat: map without key comparison")
		return nil, ErrIllegalArguments
	}
	o := options(opts)
	return sorted.NewMapFrom[K, M, S, P](sorted.Config[K, Pair[K, M]]{
		Compare:   compare,
		Policy:    policy,
		Allocator: o.Allocator,
		Traits:    o.Traits,
	}, collect(seq)...)
}

func newSet[K, S any, P storage.Ptr[K, S]](compare func(a, b K) int, policy sorted.Policy,
	keys []K, opts []Options[K]) (*sorted.Set[K, S, P], error) {
	if compare == nil {
		T().Errorf("flat: set without key comparison")
		return nil, ErrIllegalArguments
	}
	o := options(opts)
	return sorted.NewSetFrom[K, S, P](sorted.Config[K, K]{
		Compare:   compare,
		Policy:    policy,
		Allocator: o.Allocator,
		Traits:    o.Traits,
	}, keys...)
}

func collect[T any](seq iter.Seq[T]) []T {
	if seq == nil {
		return nil
	}
	return slices.Collect(seq)
}

// --- Maps -------------------------------------------------------------------

// NewMap creates an empty map with keys in their natural order.
func NewMap[K cmp.Ordered, M any](opts ...Options[Pair[K, M]]) (*Map[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](cmp.Compare[K], sorted.Unique, nil, opts)
}

// NewMapFunc creates an empty map with keys ordered by compare.
func NewMapFunc[K, M any](compare func(a, b K) int, opts ...Options[Pair[K, M]]) (*Map[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](compare, sorted.Unique, nil, opts)
}

// NewMapFrom creates a map holding copies of the pairs of seq, with keys in
// their natural order. Of pairs with equal keys, the first one is kept.
func NewMapFrom[K cmp.Ordered, M any](seq iter.Seq[Pair[K, M]], opts ...Options[Pair[K, M]]) (*Map[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](cmp.Compare[K], sorted.Unique, seq, opts)
}

// NewMapFuncFrom is NewMapFrom with keys ordered by compare.
func NewMapFuncFrom[K, M any](compare func(a, b K) int, seq iter.Seq[Pair[K, M]],
	opts ...Options[Pair[K, M]]) (*Map[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](compare, sorted.Unique, seq, opts)
}

// NewMultiMap creates an empty multi map with keys in their natural order.
func NewMultiMap[K cmp.Ordered, M any](opts ...Options[Pair[K, M]]) (*MultiMap[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](cmp.Compare[K], sorted.Multi, nil, opts)
}

// NewMultiMapFunc creates an empty multi map with keys ordered by compare.
func NewMultiMapFunc[K, M any](compare func(a, b K) int, opts ...Options[Pair[K, M]]) (*MultiMap[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](compare, sorted.Multi, nil, opts)
}

// NewMultiMapFrom creates a multi map holding copies of the pairs of seq.
// Pairs with equal keys keep their order.
func NewMultiMapFrom[K cmp.Ordered, M any](seq iter.Seq[Pair[K, M]], opts ...Options[Pair[K, M]]) (*MultiMap[K, M], error) {
	return newMap[K, M, storage.Dynamic[Pair[K, M]]](cmp.Compare[K], sorted.Multi, seq, opts)
}

// NewSmallMap creates an empty small map with keys in their natural order.
func NewSmallMap[K cmp.Ordered, M, B any](opts ...Options[Pair[K, M]]) (*SmallMap[K, M, B], error) {
	return newMap[K, M, storage.Small[Pair[K, M], B]](cmp.Compare[K], sorted.Unique, nil, opts)
}

// NewSmallMultiMap creates an empty small multi map.
func NewSmallMultiMap[K cmp.Ordered, M, B any](opts ...Options[Pair[K, M]]) (*SmallMap[K, M, B], error) {
	return newMap[K, M, storage.Small[Pair[K, M], B]](cmp.Compare[K], sorted.Multi, nil, opts)
}

// NewStaticMap creates an empty static map with keys in their natural order.
func NewStaticMap[K cmp.Ordered, M, B any](opts ...Options[Pair[K, M]]) (*StaticMap[K, M, B], error) {
	return newMap[K, M, storage.Static[Pair[K, M], B]](cmp.Compare[K], sorted.Unique, nil, opts)
}

// NewStaticMultiMap creates an empty static multi map.
func NewStaticMultiMap[K cmp.Ordered, M, B any](opts ...Options[Pair[K, M]]) (*StaticMap[K, M, B], error) {
	return newMap[K, M, storage.Static[Pair[K, M], B]](cmp.Compare[K], sorted.Multi, nil, opts)
}

// --- Sets -------------------------------------------------------------------

// NewSet creates an empty set with keys in their natural order.
func NewSet[K cmp.Ordered](opts ...Options[K]) (*Set[K], error) {
	return newSet[K, storage.Dynamic[K]](cmp.Compare[K], sorted.Unique, nil, opts)
}

// NewSetOf creates a set holding keys, in their natural order.
func NewSetOf[K cmp.Ordered](keys ...K) (*Set[K], error) {
	return newSet[K, storage.Dynamic[K]](cmp.Compare[K], sorted.Unique, keys, nil)
}

// NewSetFrom creates a set holding the keys of seq, in their natural order.
func NewSetFrom[K cmp.Ordered](seq iter.Seq[K], opts ...Options[K]) (*Set[K], error) {
	return newSet[K, storage.Dynamic[K]](cmp.Compare[K], sorted.Unique, collect(seq), opts)
}

// NewSetFunc creates an empty set with keys ordered by compare.
func NewSetFunc[K any](compare func(a, b K) int, opts ...Options[K]) (*Set[K], error) {
	return newSet[K, storage.Dynamic[K]](compare, sorted.Unique, nil, opts)
}

// NewSetFuncFrom is NewSetFrom with keys ordered by compare.
func NewSetFuncFrom[K any](compare func(a, b K) int, seq iter.Seq[K], opts ...Options[K]) (*Set[K], error) {
	return newSet[K, storage.Dynamic[K]](compare, sorted.Unique, collect(seq), opts)
}

// NewMultiSet creates an empty multi set with keys in their natural order.
func NewMultiSet[K cmp.Ordered](opts ...Options[K]) (*MultiSet[K], error) {
	return newSet[K, storage.Dynamic[K]](cmp.Compare[K], sorted.Multi, nil, opts)
}

// NewMultiSetOf creates a multi set holding keys, in their natural order.
func NewMultiSetOf[K cmp.Ordered](keys ...K) (*MultiSet[K], error) {
	return newSet[K, storage.Dynamic[K]](cmp.Compare[K], sorted.Multi, keys, nil)
}

// NewMultiSetFunc creates an empty multi set with keys ordered by compare.
func NewMultiSetFunc[K any](compare func(a, b K) int, opts ...Options[K]) (*MultiSet[K], error) {
	return newSet[K, storage.Dynamic[K]](compare, sorted.Multi, nil, opts)
}

// NewSmallSet creates an empty small set with keys in their natural order.
func NewSmallSet[K cmp.Ordered, B any](opts ...Options[K]) (*SmallSet[K, B], error) {
	return newSet[K, storage.Small[K, B]](cmp.Compare[K], sorted.Unique, nil, opts)
}

// NewSmallSetFrom creates a small set holding the keys of seq.
func NewSmallSetFrom[K cmp.Ordered, B any](seq iter.Seq[K], opts ...Options[K]) (*SmallSet[K, B], error) {
	return newSet[K, storage.Small[K, B]](cmp.Compare[K], sorted.Unique, collect(seq), opts)
}

// NewSmallMultiSet creates an empty small multi set.
func NewSmallMultiSet[K cmp.Ordered, B any](opts ...Options[K]) (*SmallSet[K, B], error) {
	return newSet[K, storage.Small[K, B]](cmp.Compare[K], sorted.Multi, nil, opts)
}

// NewStaticSet creates an empty static set with keys in their natural order.
func NewStaticSet[K cmp.Ordered, B any](opts ...Options[K]) (*StaticSet[K, B], error) {
	return newSet[K, storage.Static[K, B]](cmp.Compare[K], sorted.Unique, nil, opts)
}

// NewStaticMultiSet creates an empty static multi set.
func NewStaticMultiSet[K cmp.Ordered, B any](opts ...Options[K]) (*StaticSet[K, B], error) {
	return newSet[K, storage.Static[K, B]](cmp.Compare[K], sorted.Multi, nil, opts)
}
