//go:build flat_noassert

package contract

// Enabled reports whether precondition checks are compiled in.
const Enabled = false

// Assert is a no-op with build tag flat_noassert.
func Assert(condition bool, err error, msg string) {}
