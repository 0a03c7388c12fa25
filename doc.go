/*
Package flat offers flat containers: vectors which keep their elements in one
contiguous block, and sorted maps and sets built on them.

Flat Containers

A flat container trades the node-per-element layout of trees and hash maps
for a single array. Lookups are cache friendly binary searches, iteration is
a walk over memory, and there is one allocation per growth step instead of
one per element. Insertion and erasure in the middle are linear, so flat
containers pay off where lookups and iteration dominate updates, or where the
containers stay small.

Vectors come in three flavors, differing in where elements are stored:

	Vector[T]          always in a heap block, growing by doubling
	SmallVector[T, B]  in an inline array of type B ([N]T) up to N elements,
	                   in a heap block beyond
	StaticVector[T, B] in an inline array of type B, never more than N elements

Maps and sets are offered in the same three flavors, with unique keys
(Map, Set, ...) or equal keys allowed (MultiMap, MultiSet). Map elements are
Pair[K, M] values in key order.

	m, _ := flat.NewMap[string, int]()
	m.InsertOrAssign("one", 1)
	if v, ok := m.Get("one"); ok {
		...
	}

All containers accept Options: an allocator which hands out heap blocks
(see package alloc) and element traits which hook into copying, moving and
destruction of elements (see package memops). Errors from either are
returned unchanged, and operations which fail leave containers as they were
(see package vector for the details).

The types in this package are aliases of the generic containers in packages
vector and sorted, which may be instantiated with other storage types as well.
Containers are not safe for concurrent use.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package flat

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Error is an error type for the flat module
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = Error("illegal arguments")
