package sorted

import (
	"slices"

	"github.com/npillmayer/flat/storage"
)

// Equal reports whether a and b hold equal elements.
func Equal[K, V, S any, P storage.Ptr[V, S]](a, b *Index[K, V, S, P], eq func(x, y V) bool) bool {
	return slices.EqualFunc(a.Data(), b.Data(), eq)
}

// Compare compares the elements of a and b lexicographically.
func Compare[K, V, S any, P storage.Ptr[V, S]](a, b *Index[K, V, S, P], cmp func(x, y V) int) int {
	return slices.CompareFunc(a.Data(), b.Data(), cmp)
}
