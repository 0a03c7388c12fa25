package alloc

import (
	"fmt"
	"unsafe"

	"github.com/npillmayer/flat/internal/contract"
)

// Stats reports the bookkeeping of a Tracking allocator pool.
type Stats struct {
	Allocations   int // successful Allocate calls
	Deallocations int // Deallocate calls for non-empty blocks
	Failures      int // refused Allocate calls
	LiveBlocks    int // blocks handed out and not yet returned
	LiveSlots     int // slots in live blocks
	PeakSlots     int // high-water mark of LiveSlots
}

type pool[T any] struct {
	stats     Stats
	limit     int
	countdown int
	blocks    map[*T]int
}

// Tracking is a stateful allocator for tests and diagnostics. It hands out
// Go heap memory, but records every block, can refuse requests past a slot
// limit and can be told to fail an upcoming allocation.
//
// Tracking allocators created by NewTracking never compare equal; Sibling
// returns a distinct allocator value sharing the pool, which compares equal.
type Tracking[T any] struct {
	pool *pool[T]
	prop Propagation
}

var _ Allocator[int] = (*Tracking[int])(nil)

// NewTracking creates a tracking allocator with its own pool.
func NewTracking[T any](prop Propagation) *Tracking[T] {
	return &Tracking[T]{
		pool: &pool[T]{blocks: make(map[*T]int)},
		prop: prop,
	}
}

// Sibling returns an allocator sharing a's pool, with propagation prop.
func (a *Tracking[T]) Sibling(prop Propagation) *Tracking[T] {
	return &Tracking[T]{pool: a.pool, prop: prop}
}

// Limit caps the number of live slots of the pool. 0 removes the cap.
func (a *Tracking[T]) Limit(slots int) {
	a.pool.limit = slots
}

// FailAfter lets the (n+1)-th upcoming allocation of the pool fail with
// ErrOutOfMemory. A negative n cancels the scheduled failure.
func (a *Tracking[T]) FailAfter(n int) {
	if n < 0 {
		a.pool.countdown = 0
		return
	}
	a.pool.countdown = n + 1
}

// Stats returns a snapshot of the pool's bookkeeping.
func (a *Tracking[T]) Stats() Stats {
	return a.pool.stats
}

func (a *Tracking[T]) Allocate(n int) ([]T, error) {
	p := a.pool
	if n < 0 || n > a.MaxSize() {
		p.stats.Failures++
		return nil, fmt.Errorf("%w: %d slots", ErrAllocationTooLarge, n)
	}
	if p.countdown > 0 {
		p.countdown--
		if p.countdown == 0 {
			p.stats.Failures++
			return nil, fmt.Errorf("%w: injected failure", ErrOutOfMemory)
		}
	}
	if p.limit > 0 && p.stats.LiveSlots+n > p.limit {
		p.stats.Failures++
		return nil, fmt.Errorf("%w: %d live + %d requested > limit %d",
			ErrOutOfMemory, p.stats.LiveSlots, n, p.limit)
	}
	if n == 0 {
		return nil, nil
	}
	block := make([]T, n)
	if trackable[T]() {
		p.blocks[&block[0]] = n
	}
	p.stats.Allocations++
	p.stats.LiveBlocks++
	p.stats.LiveSlots += n
	if p.stats.LiveSlots > p.stats.PeakSlots {
		p.stats.PeakSlots = p.stats.LiveSlots
	}
	debugf("tracking allocator: allocated %d slots, %d live", n, p.stats.LiveSlots)
	return block, nil
}

func (a *Tracking[T]) Deallocate(block []T) {
	if len(block) == 0 {
		return
	}
	p := a.pool
	if trackable[T]() {
		n, ok := p.blocks[&block[0]]
		contract.Assert(ok && n == len(block), ErrForeignBlock, "tracking allocator: unknown block")
		delete(p.blocks, &block[0])
	}
	p.stats.Deallocations++
	p.stats.LiveBlocks--
	p.stats.LiveSlots -= len(block)
}

func (a *Tracking[T]) MaxSize() int {
	if a.pool.limit > 0 {
		return a.pool.limit
	}
	return MaxSlots[T]()
}

func (a *Tracking[T]) Equal(other Allocator[T]) bool {
	o, ok := other.(*Tracking[T])
	return ok && o.pool == a.pool
}

func (a *Tracking[T]) Propagation() Propagation {
	return a.prop
}

// trackable reports whether blocks of T have distinct addresses.
func trackable[T any]() bool {
	var zero T
	return unsafe.Sizeof(zero) > 0
}
