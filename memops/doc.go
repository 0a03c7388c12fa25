/*
Package memops implements construction and destruction of container elements
over blocks of slots.

A block is a []T. Slots below a container's size hold live elements, all
other slots are uninitialized, which for this package means "holding the zero
value of T". Elements enter a slot only through a Traits hook (Copy, Move or a
constructor callback) and leave it through Destroy, after which the slot is
zeroed again.

Bulk operations never leave a destination range half-built: if any element
construction fails, by returning an error or by panicking, every element
already constructed in the destination is destroyed before the failure is
propagated. The Guard type carries this bookkeeping.

Within one block, elements may be relocated bitwise (see Relocate and
Rotate). Go values carry no self-addresses the runtime would need to fix up,
so relocation never invokes user hooks and never fails.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package memops

import (
	"errors"

	"github.com/npillmayer/flat/internal/contract"
)

var (
	// ErrRangeMismatch signals a destination range too short for its source.
	ErrRangeMismatch = errors.New("memops: destination range too short")
	// ErrInjected is returned by Probe when a failure has been scheduled.
	ErrInjected = errors.New("memops: injected element failure")
)

func assert(condition bool, msg string) {
	contract.Assert(condition, ErrRangeMismatch, msg)
}
