package sorted

import (
	"fmt"
	"iter"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/storage"
)

// Pair is the element type of maps.
type Pair[K, M any] struct {
	Key   K
	Value M
}

func pairKey[K, M any](p *Pair[K, M]) K { return p.Key }

// Map is an Index of key/value pairs.
type Map[K, M, S any, P storage.Ptr[Pair[K, M], S]] struct {
	Index[K, Pair[K, M], S, P]
}

// NewMap creates an empty map. cfg.KeyOf may be left nil.
func NewMap[K, M, S any, P storage.Ptr[Pair[K, M], S]](cfg Config[K, Pair[K, M]]) (*Map[K, M, S, P], error) {
	m := &Map[K, M, S, P]{}
	if err := m.Init(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMapFrom creates a map holding copies of pairs, see NewFrom.
func NewMapFrom[K, M, S any, P storage.Ptr[Pair[K, M], S]](cfg Config[K, Pair[K, M]], pairs ...Pair[K, M]) (*Map[K, M, S, P], error) {
	m, err := NewMap[K, M, S, P](cfg)
	if err != nil {
		return nil, err
	}
	if err := m.fill(pairs); err != nil {
		return nil, err
	}
	return m, nil
}

// Init configures an empty map. cfg.KeyOf may be left nil.
func (m *Map[K, M, S, P]) Init(cfg Config[K, Pair[K, M]]) error {
	if cfg.KeyOf == nil {
		cfg.KeyOf = pairKey[K, M]
	}
	return m.Index.Init(cfg)
}

// TryEmplace inserts an element with key k and a value built by ctor, unless
// (under Unique) key k is present. ctor may be nil for a zero value. It
// returns the position of the element with key k and whether it was
// inserted; ctor is not called if nothing is inserted.
func (m *Map[K, M, S, P]) TryEmplace(k K, ctor func(v *M) error) (int, bool, error) {
	pos, ok := m.insertPos(k)
	if !ok {
		return pos, false, nil
	}
	_, err := m.vec.Emplace(pos, func(p *Pair[K, M]) error {
		p.Key = k
		if ctor != nil {
			return ctor(&p.Value)
		}
		return nil
	})
	if err != nil {
		return pos, false, err
	}
	return pos, true, nil
}

// InsertOrAssign assigns v to the first element with key k or inserts a new
// element if there is none. It returns the element's position and whether
// it was inserted.
func (m *Map[K, M, S, P]) InsertOrAssign(k K, v M) (int, bool, error) {
	pair := Pair[K, M]{Key: k, Value: v}
	if pos, ok := m.Find(k); ok {
		return pos, false, m.vec.Traits().Assign(m.vec.Nth(pos), &pair)
	}
	return m.Insert(pair)
}

// At returns the value of the first element with key k.
func (m *Map[K, M, S, P]) At(k K) (M, error) {
	if pos, ok := m.Find(k); ok {
		return m.vec.Nth(pos).Value, nil
	}
	var zero M
	return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, k)
}

// Get returns the value of the first element with key k and whether it
// exists.
func (m *Map[K, M, S, P]) Get(k K) (M, bool) {
	if pos, ok := m.Find(k); ok {
		return m.vec.Nth(pos).Value, true
	}
	var zero M
	return zero, false
}

// Ref returns a pointer to the value of the element with key k, inserting
// an element with a zero value if there is none. Like a pointer from Nth it
// is invalidated by modifications of the map.
func (m *Map[K, M, S, P]) Ref(k K) (*M, error) {
	pos, ok := m.Find(k)
	if !ok {
		var err error
		if pos, _, err = m.TryEmplace(k, nil); err != nil {
			return nil, err
		}
	}
	return &m.vec.Nth(pos).Value, nil
}

// Keys iterates over the keys in order.
func (m *Map[K, M, S, P]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, p := range m.vec.Data() {
			if !yield(p.Key) {
				return
			}
		}
	}
}

// Entries iterates over keys and values in key order.
func (m *Map[K, M, S, P]) Entries() iter.Seq2[K, M] {
	return func(yield func(K, M) bool) {
		for _, p := range m.vec.Data() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Swap exchanges the contents of two maps, see Index.Swap.
func (m *Map[K, M, S, P]) Swap(other *Map[K, M, S, P]) { m.Index.Swap(&other.Index) }

// Assign makes m a copy of src, see Index.Assign.
func (m *Map[K, M, S, P]) Assign(src *Map[K, M, S, P]) error { return m.Index.Assign(&src.Index) }

// MoveFrom moves the contents of src into m, see Index.MoveFrom.
func (m *Map[K, M, S, P]) MoveFrom(src *Map[K, M, S, P]) error { return m.Index.MoveFrom(&src.Index) }

// Clone returns a copy of m, see Index.Clone.
func (m *Map[K, M, S, P]) Clone() (*Map[K, M, S, P], error) {
	c := &Map[K, M, S, P]{}
	if err := m.cloneInto(&c.Index, alloc.ForCopy(m.Allocator())); err != nil {
		return nil, err
	}
	return c, nil
}
