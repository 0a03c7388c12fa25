package sorted

import (
	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/storage"
)

func identity[K any](k *K) K { return *k }

// Set is an Index whose elements are their own keys.
type Set[K, S any, P storage.Ptr[K, S]] struct {
	Index[K, K, S, P]
}

// NewSet creates an empty set. cfg.KeyOf may be left nil.
func NewSet[K, S any, P storage.Ptr[K, S]](cfg Config[K, K]) (*Set[K, S, P], error) {
	s := &Set[K, S, P]{}
	if err := s.Init(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSetFrom creates a set holding copies of keys, see NewFrom.
func NewSetFrom[K, S any, P storage.Ptr[K, S]](cfg Config[K, K], keys ...K) (*Set[K, S, P], error) {
	s, err := NewSet[K, S, P](cfg)
	if err != nil {
		return nil, err
	}
	if err := s.fill(keys); err != nil {
		return nil, err
	}
	return s, nil
}

// Init configures an empty set. cfg.KeyOf may be left nil.
func (s *Set[K, S, P]) Init(cfg Config[K, K]) error {
	if cfg.KeyOf == nil {
		cfg.KeyOf = identity[K]
	}
	return s.Index.Init(cfg)
}

func (s *Set[K, S, P]) Swap(other *Set[K, S, P])         { s.Index.Swap(&other.Index) }
func (s *Set[K, S, P]) Assign(src *Set[K, S, P]) error   { return s.Index.Assign(&src.Index) }
func (s *Set[K, S, P]) MoveFrom(src *Set[K, S, P]) error { return s.Index.MoveFrom(&src.Index) }

// Clone returns a copy of s, see Index.Clone.
func (s *Set[K, S, P]) Clone() (*Set[K, S, P], error) {
	c := &Set[K, S, P]{}
	if err := s.cloneInto(&c.Index, alloc.ForCopy(s.Allocator())); err != nil {
		return nil, err
	}
	return c, nil
}
