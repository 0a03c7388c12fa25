/*
Package storage provides the slot blocks vectors are built on.

Three strategies share the Strategy interface:

	Static[T,B]   inline array B ([N]T); capacity N, never allocates.
	Small[T,B]    inline array B up to N elements, a heap block beyond.
	Dynamic[T]    always a heap block; capacity starts at 0.

B must be an array type with element type T. Storage is meant to be embedded
by value in the owning container; a Strategy must not be copied once it holds
elements.

A strategy does not know how many of its slots are live; the owning
container passes that count into every operation relocating elements.

Small storage keeps this invariant: Slots() is backed by the inline array if
and only if the storage is not externally allocated, and an external block is
always larger than the inline array.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package storage

import (
	"errors"

	"github.com/npillmayer/flat/internal/contract"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

var (
	// ErrCapacityExceeded signals a request beyond a static capacity.
	ErrCapacityExceeded = errors.New("storage: static capacity exceeded")
	// ErrInvalidBuffer signals an inline buffer type which is not an array
	// of the element type.
	ErrInvalidBuffer = errors.New("storage: inline buffer must be an array of the element type")
	// ErrCorrupted is returned by Check for a violated storage invariant.
	ErrCorrupted = errors.New("storage: invariant violated")
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
