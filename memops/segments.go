package memops

// Contiguous is implemented by sources whose live elements form one run of
// slots.
type Contiguous[T any] interface {
	Contiguous() []T
}

// Segmented is implemented by sources whose elements live in several
// contiguous runs, e.g. a segmented array. Segments yields the runs in
// order until yield returns false.
//
// No container of this module is segmented; bulk operations accept the
// interface so segmented sources can feed them without an intermediate copy.
type Segmented[T any] interface {
	Segments(yield func(seg []T) bool)
}

// SegmentsOf adapts a contiguous source to Segmented.
func SegmentsOf[T any](c Contiguous[T]) Segmented[T] {
	return single[T]{c}
}

type single[T any] struct {
	c Contiguous[T]
}

func (s single[T]) Segments(yield func(seg []T) bool) {
	if run := s.c.Contiguous(); len(run) > 0 {
		yield(run)
	}
}

// SegmentsLen returns the total number of elements in src.
func SegmentsLen[T any](src Segmented[T]) int {
	n := 0
	src.Segments(func(seg []T) bool {
		n += len(seg)
		return true
	})
	return n
}

// UninitializedCopySegments copy-constructs dst from the runs of src, in
// order. On failure every element built in dst is destroyed.
func UninitializedCopySegments[T any](tr Traits[T], src Segmented[T], dst []T) (err error) {
	tr = OrPlain(tr)
	g := NewGuard(tr, dst)
	defer g.Rollback()
	i := 0
	src.Segments(func(seg []T) bool {
		for j := range seg {
			assert(i < len(dst), "segment copy: destination too short")
			if err = tr.Copy(&dst[i], &seg[j]); err != nil {
				return false
			}
			g.Advance()
			i++
		}
		return true
	})
	if err != nil {
		return err
	}
	g.Commit()
	return nil
}
