package vector

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/npillmayer/flat/alloc"
	"github.com/npillmayer/flat/memops"
	"github.com/npillmayer/flat/storage"
)

// Vector is a contiguous sequence over storage S, operated on through P
// (which is *S).
//
// The zero value is an empty vector using the heap allocator and plain
// element traits. A Vector must not be copied by value; use Clone or
// Assign.
type Vector[T, S any, P storage.Ptr[T, S]] struct {
	store  S
	size   int
	traits memops.Traits[T]
}

// New creates an empty vector.
func New[T, S any, P storage.Ptr[T, S]](cfg Config[T]) (*Vector[T, S, P], error) {
	v := &Vector[T, S, P]{}
	if err := v.Init(cfg); err != nil {
		return nil, err
	}
	return v, nil
}

// NewOf creates a vector holding copies of vals. On failure, no memory is
// held and no element is alive.
func NewOf[T, S any, P storage.Ptr[T, S]](cfg Config[T], vals ...T) (*Vector[T, S, P], error) {
	return NewFrom[T, S, P](cfg, slices.Values(vals))
}

// NewFrom creates a vector holding copies of the elements of seq, see
// NewOf.
func NewFrom[T, S any, P storage.Ptr[T, S]](cfg Config[T], seq iter.Seq[T]) (*Vector[T, S, P], error) {
	v, err := New[T, S, P](cfg)
	if err != nil {
		return nil, err
	}
	if _, err := v.InsertSeq(0, seq); err != nil {
		v.Reset()
		return nil, err
	}
	return v, nil
}

// NewMoved creates a vector with the contents of src, leaving src empty.
// The new vector uses allocator a, or src's allocator if a is nil; a heap
// block of src is taken over if the allocators compare equal. The element
// traits are src's.
func NewMoved[T, S any, P storage.Ptr[T, S]](src *Vector[T, S, P], a alloc.Allocator[T]) (*Vector[T, S, P], error) {
	if a == nil {
		a = src.Allocator()
	}
	v, err := New[T, S, P](Config[T]{Allocator: a, Traits: src.traits})
	if err != nil {
		return nil, err
	}
	if err := v.moveFrom(src, false); err != nil {
		v.Reset()
		return nil, err
	}
	return v, nil
}

// Init (re-)configures an empty vector. It is meant for vectors embedded by
// value in other containers.
func (v *Vector[T, S, P]) Init(cfg Config[T]) error {
	assert(v.size == 0, ErrIndexOutOfBounds, "init of non-empty vector")
	cfg = cfg.normalized()
	st := v.st()
	st.Release()
	if err := st.Init(cfg.Allocator); err != nil {
		return err
	}
	v.traits = cfg.Traits
	return nil
}

func (v *Vector[T, S, P]) st() P {
	return P(&v.store)
}

func (v *Vector[T, S, P]) tr() memops.Traits[T] {
	return memops.OrPlain(v.traits)
}

// Traits returns the element traits in use.
func (v *Vector[T, S, P]) Traits() memops.Traits[T] {
	return v.tr()
}

// Allocator returns the allocator in use, nil for static vectors.
func (v *Vector[T, S, P]) Allocator() alloc.Allocator[T] {
	return v.st().Allocator()
}

// --- Capacity ---------------------------------------------------------------

// Len returns the number of elements.
func (v *Vector[T, S, P]) Len() int { return v.size }

// IsEmpty reports whether the vector has no elements.
func (v *Vector[T, S, P]) IsEmpty() bool { return v.size == 0 }

// Cap returns the number of slots of the current block.
func (v *Vector[T, S, P]) Cap() int { return v.st().Cap() }

// MaxSize returns the largest size the vector could reach.
func (v *Vector[T, S, P]) MaxSize() int { return v.st().MaxCap() }

// Available returns Cap() - Len().
func (v *Vector[T, S, P]) Available() int { return v.Cap() - v.size }

// Full reports whether the next insertion needs a new block, or, for static
// vectors, is impossible.
func (v *Vector[T, S, P]) Full() bool { return v.size == v.Cap() }

// StaticCapacity returns the fixed capacity of a static vector and 0 for
// other vectors.
func (v *Vector[T, S, P]) StaticCapacity() int {
	if st := v.st(); st.Static() {
		return st.Cap()
	}
	return 0
}

// IsInline reports whether the elements live in an inline buffer.
func (v *Vector[T, S, P]) IsInline() bool { return v.st().IsInline() }

// --- Element access ---------------------------------------------------------

// Data returns the live elements. The slice aliases the vector's block and
// is invalidated like a pointer from Nth.
func (v *Vector[T, S, P]) Data() []T {
	return v.st().Slots()[:v.size:v.size]
}

// Contiguous implements memops.Contiguous.
func (v *Vector[T, S, P]) Contiguous() []T { return v.Data() }

// Segments implements memops.Segmented with a single run.
func (v *Vector[T, S, P]) Segments(yield func(seg []T) bool) {
	if v.size > 0 {
		yield(v.Data())
	}
}

// At returns the element at position i.
func (v *Vector[T, S, P]) At(i int) T {
	return *v.Nth(i)
}

// Nth returns a pointer to the element at position i.
func (v *Vector[T, S, P]) Nth(i int) *T {
	assert(i >= 0 && i < v.size, ErrIndexOutOfBounds, fmt.Sprintf("nth(%d) of %d", i, v.size))
	return &v.st().Slots()[i]
}

// IndexOf returns the position of the element p points to. p must come from
// Nth (or Data) of this vector and must still be valid.
func (v *Vector[T, S, P]) IndexOf(p *T) int {
	slots := v.st().Slots()
	var zero T
	esize := unsafe.Sizeof(zero)
	if esize == 0 || len(slots) == 0 {
		assert(p != nil && v.size > 0, ErrIndexOutOfBounds, "index of foreign pointer")
		return 0
	}
	off := uintptr(unsafe.Pointer(p)) - uintptr(unsafe.Pointer(unsafe.SliceData(slots)))
	i := int(off / esize)
	assert(off%esize == 0 && i >= 0 && i < v.size, ErrIndexOutOfBounds, "pointer does not address a live element")
	return i
}

// Front returns the first element.
func (v *Vector[T, S, P]) Front() T { return v.At(0) }

// Back returns the last element.
func (v *Vector[T, S, P]) Back() T { return v.At(v.size - 1) }

// All iterates over positions and elements, front to back.
func (v *Vector[T, S, P]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.Data() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Values iterates over the elements, front to back.
func (v *Vector[T, S, P]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.Data() {
			if !yield(x) {
				return
			}
		}
	}
}

// Backward iterates over positions and elements, back to front.
func (v *Vector[T, S, P]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		data := v.Data()
		for i := len(data) - 1; i >= 0; i-- {
			if !yield(i, data[i]) {
				return
			}
		}
	}
}

// Check validates the vector's invariants.
func (v *Vector[T, S, P]) Check() error {
	if v.size < 0 || v.size > v.Cap() {
		return fmt.Errorf("%w: size %d, capacity %d", storage.ErrCorrupted, v.size, v.Cap())
	}
	return v.st().Check(v.size)
}
