package memops

// ConstructAt copy-constructs a single element into the uninitialized slot dst.
// On failure the slot is left uninitialized.
func ConstructAt[T any](tr Traits[T], dst, src *T) (err error) {
	tr = OrPlain(tr)
	ok := false
	defer func() {
		if !ok {
			var zero T
			*dst = zero
		}
	}()
	if err = tr.Copy(dst, src); err != nil {
		return err
	}
	ok = true
	return nil
}

// Emplace constructs a single element in place by calling ctor on the
// uninitialized slot dst. On failure the slot is left uninitialized.
func Emplace[T any](dst *T, ctor func(*T) error) (err error) {
	ok := false
	defer func() {
		if !ok {
			var zero T
			*dst = zero
		}
	}()
	if ctor != nil {
		if err = ctor(dst); err != nil {
			return err
		}
	}
	ok = true
	return nil
}

// DestroyAt destroys a single live element, leaving its slot uninitialized.
func DestroyAt[T any](tr Traits[T], p *T) {
	var zero T
	OrPlain(tr).Destroy(p)
	*p = zero
}

// Destroy destroys every element of slots without releasing the block.
func Destroy[T any](tr Traits[T], slots []T) {
	if len(slots) == 0 {
		return
	}
	tr = OrPlain(tr)
	for i := range slots {
		tr.Destroy(&slots[i])
	}
	clear(slots)
}

// UninitializedCopy copy-constructs dst[:len(src)] from src.
//
// If any construction fails, the elements already built in dst are destroyed
// and the failure is propagated unchanged. src is never modified.
func UninitializedCopy[T any](tr Traits[T], src, dst []T) error {
	assert(len(dst) >= len(src), "uninitialized copy: destination too short")
	tr = OrPlain(tr)
	g := NewGuard(tr, dst[:len(src)])
	defer g.Rollback()
	for i := range src {
		if err := tr.Copy(&dst[i], &src[i]); err != nil {
			return err
		}
		g.Advance()
	}
	g.Commit()
	return nil
}

// UninitializedMove move-constructs dst[:len(src)] from src.
//
// On failure, the elements already built in dst are destroyed. The sources
// already moved from stay in their moved-from state; callers needing an
// intact source use UninitializedMoveIfNoFail.
func UninitializedMove[T any](tr Traits[T], src, dst []T) error {
	assert(len(dst) >= len(src), "uninitialized move: destination too short")
	tr = OrPlain(tr)
	g := NewGuard(tr, dst[:len(src)])
	defer g.Rollback()
	for i := range src {
		if err := tr.Move(&dst[i], &src[i]); err != nil {
			return err
		}
		g.Advance()
	}
	g.Commit()
	return nil
}

// UninitializedMoveIfNoFail moves src into dst if moving cannot fail, and
// copies otherwise. Either way, a failure leaves src exactly as it was.
func UninitializedMoveIfNoFail[T any](tr Traits[T], src, dst []T) error {
	tr = OrPlain(tr)
	if tr.MoveCannotFail() {
		return UninitializedMove(tr, src, dst)
	}
	return UninitializedCopy(tr, src, dst)
}

// UninitializedFill copy-constructs every slot of dst from value.
func UninitializedFill[T any](tr Traits[T], dst []T, value T) error {
	tr = OrPlain(tr)
	g := NewGuard(tr, dst)
	defer g.Rollback()
	for i := range dst {
		if err := tr.Copy(&dst[i], &value); err != nil {
			return err
		}
		g.Advance()
	}
	g.Commit()
	return nil
}

// UninitializedEmplace constructs every slot of dst by calling ctor with the
// slot's offset. tr destroys the built elements if a later ctor call fails.
func UninitializedEmplace[T any](tr Traits[T], dst []T, ctor func(i int, p *T) error) error {
	g := NewGuard(tr, dst)
	defer g.Rollback()
	for i := range dst {
		if err := ctor(i, &dst[i]); err != nil {
			return err
		}
		g.Advance()
	}
	g.Commit()
	return nil
}
