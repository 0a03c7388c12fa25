//go:build !flat_noassert

// Package contract checks preconditions of the container engine.
//
// Precondition violations (out-of-range positions, overfilling a static
// container, swapping allocator-incompatible containers) panic with an error
// wrapping a package sentinel. Building with tag `flat_noassert` removes the
// checks; violating a precondition is undefined behavior then.
package contract

import "fmt"

// Enabled reports whether precondition checks are compiled in.
const Enabled = true

// Assert panics with an error wrapping err if condition does not hold.
func Assert(condition bool, err error, msg string) {
	if !condition {
		panic(fmt.Errorf("%w: %s", err, msg))
	}
}
