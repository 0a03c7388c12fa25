package vector

import (
	"slices"

	"github.com/npillmayer/flat/storage"
)

// Equal reports whether a and b hold equal elements in equal order.
func Equal[T, S any, P storage.Ptr[T, S]](a, b *Vector[T, S, P], eq func(x, y T) bool) bool {
	return slices.EqualFunc(a.Data(), b.Data(), eq)
}

// Compare compares a and b lexicographically.
func Compare[T, S any, P storage.Ptr[T, S]](a, b *Vector[T, S, P], cmp func(x, y T) int) int {
	return slices.CompareFunc(a.Data(), b.Data(), cmp)
}
