package memops

// Probe is an instrumented Traits implementation. It counts hook calls,
// tracks the number of live elements and can be told to fail one of the
// upcoming element operations, which makes it the tool of choice for
// testing failure guarantees of containers.
//
// A Probe is shared by reference between all containers using it.
type Probe[T any] struct {
	Copies, Moves, Assigns, Destroys int
	// Live counts elements constructed by Copy/Move and not yet destroyed.
	Live int
	// FallibleMove makes MoveCannotFail report false and lets injected
	// failures hit Move as well.
	FallibleMove bool
	// Panic makes an injected failure panic with ErrInjected instead of
	// returning it.
	Panic bool
	countdown int
}

var _ Traits[int] = (*Probe[int])(nil)

// NewProbe creates a probe with infallible moves and no scheduled failure.
func NewProbe[T any]() *Probe[T] {
	return &Probe[T]{}
}

// FailAfter schedules a failure: after n more successful fallible
// operations (Copy, Assign, and Move if FallibleMove), the next one fails.
// A negative n cancels a scheduled failure.
func (p *Probe[T]) FailAfter(n int) {
	if n < 0 {
		p.countdown = 0
		return
	}
	p.countdown = n + 1
}

func (p *Probe[T]) fail() error {
	if p.countdown == 0 {
		return nil
	}
	p.countdown--
	if p.countdown > 0 {
		return nil
	}
	if p.Panic {
		panic(ErrInjected)
	}
	return ErrInjected
}

func (p *Probe[T]) Copy(dst, src *T) error {
	if err := p.fail(); err != nil {
		return err
	}
	*dst = *src
	p.Copies++
	p.Live++
	return nil
}

func (p *Probe[T]) Move(dst, src *T) error {
	if p.FallibleMove {
		if err := p.fail(); err != nil {
			return err
		}
	}
	var zero T
	*dst = *src
	*src = zero
	p.Moves++
	p.Live++
	return nil
}

func (p *Probe[T]) Assign(dst, src *T) error {
	if err := p.fail(); err != nil {
		return err
	}
	*dst = *src
	p.Assigns++
	return nil
}

func (p *Probe[T]) Destroy(_ *T) {
	p.Destroys++
	p.Live--
}

func (p *Probe[T]) MoveCannotFail() bool {
	return !p.FallibleMove
}
