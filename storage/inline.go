package storage

import (
	"fmt"
	"reflect"
	"unsafe"
)

func checkBuffer[T, B any]() error {
	bt, et := reflect.TypeFor[B](), reflect.TypeFor[T]()
	if bt.Kind() != reflect.Array || bt.Elem() != et {
		return fmt.Errorf("%w: %v is not [N]%v", ErrInvalidBuffer, bt, et)
	}
	return nil
}

func inlineLen[T, B any]() int {
	bt := reflect.TypeFor[B]()
	assert(bt.Kind() == reflect.Array, ErrInvalidBuffer, bt.String())
	return bt.Len()
}

// inlineView returns a slice over the array behind buf.
func inlineView[T, B any](buf *B) []T {
	n := inlineLen[T, B]()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(buf)), n) //nolint:gosec // B is [n]T
}

// backedBy reports whether block starts at the array behind buf.
func backedBy[T, B any](block []T, buf *B) bool {
	return len(block) > 0 && unsafe.SliceData(block) == (*T)(unsafe.Pointer(buf)) //nolint:gosec // B is [n]T
}

func sameBlock[T any](a, b []T) bool {
	return len(a) > 0 && len(b) > 0 && unsafe.SliceData(a) == unsafe.SliceData(b)
}

// checkTail verifies that slots at and above size are uninitialized.
func checkTail[T any](slots []T, size int) error {
	for i := size; i < len(slots); i++ {
		if !reflect.ValueOf(&slots[i]).Elem().IsZero() {
			return fmt.Errorf("%w: slot %d above size %d is not cleared", ErrCorrupted, i, size)
		}
	}
	return nil
}
