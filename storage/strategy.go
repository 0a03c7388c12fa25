package storage

import (
	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
)

// Strategy is the interface shared by all storage variants.
type Strategy[T any] interface {
	// Init validates the storage type and installs an allocator (nil selects
	// alloc.Heap). Static storage ignores the allocator.
	Init(a alloc.Allocator[T]) error
	// Slots returns all slots of the current block; len(Slots()) == Cap().
	Slots() []T
	Cap() int
	// MaxCap is the largest capacity the storage could ever reach.
	MaxCap() int
	// Static reports a compile-time fixed capacity.
	Static() bool
	// IsInline reports whether the current block is an inline buffer.
	IsInline() bool
	// Allocator returns the allocator in use, nil for static storage.
	Allocator() alloc.Allocator[T]
	SetAllocator(a alloc.Allocator[T])
	// Acquire ensures capacity for at least n elements. If a new block is
	// needed, the leading live elements are moved (or copied, see
	// memops.UninitializedMoveIfNoFail) into it, the originals destroyed and
	// the old heap block released. On failure nothing has changed.
	Acquire(n, live int, tr memops.Traits[T]) error
	// NewBlock returns an uninitialized block of at least n slots, which is
	// not part of the storage until adopted.
	NewBlock(n int) ([]T, error)
	// Adopt installs a block from NewBlock as the current block and releases
	// the previous heap block. The previous block must hold no live elements.
	Adopt(block []T)
	// FreeBlock gives back a block from NewBlock which has not been adopted.
	FreeBlock(block []T)
	// Shrink reduces capacity towards live, moving elements as Acquire does.
	Shrink(live int, tr memops.Traits[T]) error
	// Release frees heap-owned memory. There must be no live elements.
	Release()
	// Check validates the storage invariants for a container of the given size.
	Check(size int) error
}

// Ptr constrains the pointer type of a storage type S. Containers embed S
// by value and operate on it through P.
type Ptr[T, S any] interface {
	*S
	Strategy[T]
	// Exchange swaps the contents of two storages holding size and otherSize
	// live elements. It never fails. Allocators are not exchanged.
	Exchange(other *S, size, otherSize int)
}

// transfer relocates live elements from old into block, then destroys them
// in old. On failure block holds no elements and old is untouched.
func transfer[T any](old, block []T, live int, tr memops.Traits[T]) error {
	if err := memops.UninitializedMoveIfNoFail(tr, old[:live], block[:live]); err != nil {
		return err
	}
	memops.Destroy(tr, old[:live])
	return nil
}
