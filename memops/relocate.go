package memops

import "slices"

// Relocate moves the elements of src bitwise into dst and returns the number
// of elements moved. Ranges may overlap. Slots of src not covered by dst keep
// their old bits; callers clear them if they become uninitialized.
func Relocate[T any](dst, src []T) int {
	return copy(dst, src)
}

// Rotate rotates slots right by k positions: the last k elements become the
// first k, the others shift up by k. Rotate never fails.
func Rotate[T any](slots []T, k int) {
	n := len(slots)
	if n == 0 {
		return
	}
	k %= n
	if k == 0 {
		return
	}
	slices.Reverse(slots)
	slices.Reverse(slots[:k])
	slices.Reverse(slots[k:])
}

// Exchange swaps a[i] and b[i] for i < n.
func Exchange[T any](a, b []T, n int) {
	assert(n <= len(a) && n <= len(b), "exchange: ranges too short")
	for i := 0; i < n; i++ {
		a[i], b[i] = b[i], a[i]
	}
}
