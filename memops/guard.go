package memops

// Guard owns a destination range while it is being constructed front to
// back.
//
// Typical use:
//
//	g := memops.NewGuard(tr, dst)
//	defer g.Rollback()
//	for i := range src {
//		if err := tr.Copy(&dst[i], &src[i]); err != nil {
//			return err
//		}
//		g.Advance()
//	}
//	g.Commit()
//
// Rollback destroys the elements constructed so far and clears the slot whose
// construction was in progress, unless Commit has been called. It is
// idempotent, and runs just as well for a panicking constructor.
type Guard[T any] struct {
	tr    Traits[T]
	slots []T
	n     int
	done  bool
}

// NewGuard starts guarding construction into slots.
func NewGuard[T any](tr Traits[T], slots []T) Guard[T] {
	return Guard[T]{tr: OrPlain(tr), slots: slots}
}

// Advance marks the next slot as constructed.
func (g *Guard[T]) Advance() {
	assert(g.n < len(g.slots), "guard advanced past its range")
	g.n++
}

// Constructed returns the number of slots constructed so far.
func (g *Guard[T]) Constructed() int {
	return g.n
}

// Commit hands ownership of the constructed elements to the caller.
func (g *Guard[T]) Commit() {
	g.done = true
}

// Rollback undoes an uncommitted construction.
func (g *Guard[T]) Rollback() {
	if g.done {
		return
	}
	g.done = true
	Destroy(g.tr, g.slots[:g.n])
	if g.n < len(g.slots) {
		var zero T
		g.slots[g.n] = zero
	}
}
