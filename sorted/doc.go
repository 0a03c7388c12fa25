/*
Package sorted implements flat associative containers: elements kept in a
vector in key order and found by binary search.

An Index is parameterized by the key type K, the element type V, and the
storage of its vector. The key of an element is obtained by a projection
(Config.KeyOf) and ordered by a three-way comparison (Config.Compare). Under
the Unique policy no two elements have equal keys; under Multi, equal keys
are allowed and a new element is placed behind the elements with an equal
key, or at a valid insertion hint.

Map and Set are the usual layers on top of Index, with Pair[K, M] and K as
elements.

	m, _ := sorted.NewMap[string, int, storage.Dynamic[sorted.Pair[string, int]]](
		sorted.Config[string, sorted.Pair[string, int]]{Compare: strings.Compare})
	_, _, _ = m.InsertOrAssign("answer", 42)

Lookups accepting a probe (LowerBoundFunc etc.) or a query of another type
(FindAs etc.) search for keys without constructing a K.

Elements must not be modified in a way that changes their key. Index.Check
verifies the ordering.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package sorted

import (
	"errors"

	"github.com/npillmayer/flat/internal/contract"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

var (
	// ErrKeyNotFound is returned by lookups requiring an existing key.
	ErrKeyNotFound = errors.New("sorted: key not found")
	// ErrInvalidConfig signals a configuration missing comparison or key
	// projection.
	ErrInvalidConfig = errors.New("sorted: invalid config")
	// ErrNotSorted is reported by Check for elements out of key order.
	ErrNotSorted = errors.New("sorted: elements out of order")
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
