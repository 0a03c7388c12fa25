/*
Package alloc defines the allocator capability consumed by the containers of
this module, together with a few allocators.

An allocator hands out blocks of uninitialized slots and takes them back.
Besides Allocate and Deallocate it publishes a propagation policy: whether a
container adopts the source's allocator on copy assignment, move assignment
and swap, or keeps its own.

	Heap      the default; garbage-collected make([]T, n), always equal.
	Tracking  counts blocks and slots, enforces limits, injects failures.
	Arena     carves blocks from large chunks, released all at once.

Allocators are shared by reference between containers copied from one
another. They are never owned by an element.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package alloc

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

var (
	// ErrOutOfMemory signals that an allocator could not satisfy a request.
	ErrOutOfMemory = errors.New("alloc: out of memory")
	// ErrAllocationTooLarge signals a request beyond an allocator's MaxSize.
	ErrAllocationTooLarge = errors.New("alloc: allocation exceeds max size")
	// ErrForeignBlock signals the release of a block not owned by the allocator.
	ErrForeignBlock = errors.New("alloc: block not owned by allocator")
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
