package vector

import (
	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
)

// Config configures a vector.
type Config[T any] struct {
	// Allocator provides heap blocks; nil selects alloc.Heap. Static vectors
	// ignore it.
	Allocator alloc.Allocator[T]
	// Traits governs element construction and destruction; nil selects
	// memops.Plain.
	Traits memops.Traits[T]
}

func (cfg Config[T]) normalized() Config[T] {
	cfg.Allocator = alloc.OrHeap(cfg.Allocator)
	cfg.Traits = memops.OrPlain(cfg.Traits)
	return cfg
}
