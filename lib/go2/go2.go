// Package go2 holds small generic helpers missing from the standard library.
package go2

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func Pointer[T any](v T) *T {
	return &v
}

// PointerIf returns a pointer to v when ok, nil otherwise.
func PointerIf[T any](ok bool, v T) *T {
	if !ok {
		return nil
	}
	return &v
}

func Contains[T comparable](els []T, el T) bool {
	return slices.Index(els, el) >= 0
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
