/*
Package vector implements the vector core shared by all sequence containers:
size tracking over a storage strategy, insertion and erasure with order
preservation, the growth policy, and the copy/move/swap semantics governed by
allocator propagation.

	type Ints = vector.Vector[int, storage.Small[int, [8]int], *storage.Small[int, [8]int]]

	v, _ := vector.New[int, storage.Small[int, [8]int]](vector.Config[int]{})
	_ = v.Push(42)

Growth: if an insertion of k elements exceeds the capacity c of a vector of
size n, the new capacity is max(2c, n+k), capped at MaxSize(). Static vectors
never grow; overfilling them is a precondition violation.

Failure guarantee: Insert, Emplace, Push, Reserve, ShrinkToFit and Erase either
succeed or return the element's or allocator's error (or let its panic pass)
with the vector observably unchanged. Assign and MoveFrom give the basic
guarantee where they assign over or move live elements one by one.

Positions are int offsets. Nth returns a pointer to a slot, which stays valid
until that slot or an earlier one is erased or the vector reallocates.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package vector

import (
	"errors"

	"github.com/npillmayer/flat/internal/contract"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

var (
	// ErrIndexOutOfBounds signals an invalid position or range.
	ErrIndexOutOfBounds = errors.New("vector: index out of bounds")
	// ErrLengthExceeded signals a requested size beyond MaxSize.
	ErrLengthExceeded = errors.New("vector: length exceeds max size")
	// ErrIncompatibleAllocators signals a swap of vectors whose allocators
	// neither propagate nor compare equal.
	ErrIncompatibleAllocators = errors.New("vector: allocators incompatible")
)

// tracer traces with the global core tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

func debugf(format string, args ...interface{}) {
	if t := tracer(); t != nil {
		t.Debugf(format, args...)
	}
}

func assert(condition bool, err error, msg string) {
	contract.Assert(condition, err, msg)
}
