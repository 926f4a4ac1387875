package math

import (
	"cmp"
	"sort"
)

// Generic function that sorts the keys of a map
// Used for deterministic ranging of maps
func GetSortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, len(m))
	i := 0
	for k := range m {
		keys[i] = k
		i++
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Generic Sum function, given an array of values returns its sum
func SumRatSlice(x []Rat) Rat {
	sum := ZeroRat()
	for _, v := range x {
		sum = sum.Add(v)
	}
	return sum
}

// MinRatSlice returns the smallest element of x, and false when x is empty.
func MinRatSlice(x []Rat) (Rat, bool) {
	if len(x) == 0 {
		return Rat{}, false
	}
	min := x[0]
	for _, v := range x[1:] {
		min = MinRat(min, v)
	}
	return min, true
}

// MaxRatSlice returns the largest element of x, and false when x is empty.
func MaxRatSlice(x []Rat) (Rat, bool) {
	if len(x) == 0 {
		return Rat{}, false
	}
	max := x[0]
	for _, v := range x[1:] {
		max = MaxRat(max, v)
	}
	return max, true
}
