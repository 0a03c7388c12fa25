package sorted

import (
	"fmt"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/vector"
)

// Policy decides whether an index admits equal keys.
type Policy int

const (
	// Unique admits at most one element per key.
	Unique Policy = iota
	// Multi admits any number of elements per key.
	Multi
)

func (p Policy) String() string {
	switch p {
	case Unique:
		return "unique"
	case Multi:
		return "multi"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Config configures an index.
type Config[K, V any] struct {
	// Compare orders keys; it returns a negative number if a < b, 0 if they
	// are equal and a positive number if a > b.
	Compare func(a, b K) int
	// KeyOf projects an element to its key. Maps and sets fill it in.
	KeyOf  func(v *V) K
	Policy Policy
	// Allocator and Traits are handed to the underlying vector.
	Allocator alloc.Allocator[V]
	Traits    memops.Traits[V]
}

func (cfg Config[K, V]) validate() error {
	if cfg.Compare == nil {
		return fmt.Errorf("%w: missing key comparison", ErrInvalidConfig)
	}
	if cfg.KeyOf == nil {
		return fmt.Errorf("%w: missing key projection", ErrInvalidConfig)
	}
	if cfg.Policy != Unique && cfg.Policy != Multi {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, cfg.Policy)
	}
	return nil
}

func (cfg Config[K, V]) vectorConfig() vector.Config[V] {
	return vector.Config[V]{Allocator: cfg.Allocator, Traits: cfg.Traits}
}
