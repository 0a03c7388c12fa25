package memops

// Traits describes how values of type T are constructed into slots,
// assigned and destroyed.
//
// Copy and Move construct *dst from *src, where *dst is an uninitialized
// slot. Move may leave *src in any valid state ("moved-from"). Assign
// overwrites the live element *dst with the value of *src. Any of these may
// fail. Destroy ends the lifetime of a live element and must not fail.
//
// MoveCannotFail reports whether Move is guaranteed to succeed. Containers
// prefer moving over copying during reallocation only if this holds, so a
// failing move can never leave the source container damaged.
type Traits[T any] interface {
	Copy(dst, src *T) error
	Move(dst, src *T) error
	Assign(dst, src *T) error
	Destroy(p *T)
	MoveCannotFail() bool
}

// Plain is the default element behavior: Go assignment, never failing.
type Plain[T any] struct{}

var _ Traits[int] = Plain[int]{}

func (Plain[T]) Copy(dst, src *T) error {
	*dst = *src
	return nil
}

// Move relocates *src to *dst and clears *src, dropping references the
// moved-from value might still hold.
func (Plain[T]) Move(dst, src *T) error {
	var zero T
	*dst = *src
	*src = zero
	return nil
}

func (Plain[T]) Assign(dst, src *T) error {
	*dst = *src
	return nil
}

func (Plain[T]) Destroy(p *T) {}

func (Plain[T]) MoveCannotFail() bool { return true }

// OrPlain returns tr, or Plain[T] if tr is nil.
func OrPlain[T any](tr Traits[T]) Traits[T] {
	if tr == nil {
		return Plain[T]{}
	}
	return tr
}
