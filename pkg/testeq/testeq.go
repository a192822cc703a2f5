// Package testeq provides test helpers reporting every difference
// between expected and actual multiplicities instead of failing
// on the first one.
package testeq

import (
	"strconv"

	"github.com/graph-guard/cmset/pkg/math"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Writer is implemented by *testing.T and *testing.B.
type Writer interface {
	Helper()
	Errorf(fmt string, v ...any)
}

// Maps reports mismatching, missing and unexpected keys
// in ascending key order.
func Maps[K constraints.Ordered, V any](
	w Writer,
	title string,
	expected, actual map[K]V,
	check func(expected, actual V) (errMsg string),
	stringify func(V) string,
) (ok bool) {
	w.Helper()
	ok = true

	for _, k := range sortedKeys(expected) {
		ev := expected[k]
		av, found := actual[k]
		if !found {
			w.Errorf("missing %s %v (%s)", title, k, stringify(ev))
			ok = false
			continue
		}
		if msg := check(ev, av); msg != "" {
			w.Errorf("mismatching %s %v: %s", title, k, msg)
			ok = false
		}
	}

	for _, k := range sortedKeys(actual) {
		if _, found := expected[k]; !found {
			w.Errorf("unexpected %s %v (%s)", title, k, stringify(actual[k]))
			ok = false
		}
	}

	return ok
}

// Counts is Maps specialized for multiplicity maps.
func Counts[K constraints.Ordered, C math.Unsigned](
	w Writer,
	title string,
	expected, actual map[K]C,
) (ok bool) {
	w.Helper()
	return Maps(w, title, expected, actual, compareCounts[C], formatCount[C])
}

// Slices reports mismatching, missing and unexpected items by index.
func Slices[T any](
	w Writer,
	title string,
	expected, actual []T,
	check func(expected, actual T) (errMsg string),
	stringify func(T) string,
) (ok bool) {
	w.Helper()
	ok = true

	n := math.Min(len(expected), len(actual))
	for i := 0; i < n; i++ {
		if msg := check(expected[i], actual[i]); msg != "" {
			w.Errorf("mismatching %s at index %d: %s", title, i, msg)
			ok = false
		}
	}
	for i := n; i < len(actual); i++ {
		w.Errorf("unexpected %s at index %d (%s)",
			title, i, stringify(actual[i]))
		ok = false
	}
	for i := n; i < len(expected); i++ {
		w.Errorf("missing %s at index %d (%s)",
			title, i, stringify(expected[i]))
		ok = false
	}
	return ok
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	k := make([]K, 0, len(m))
	for x := range m {
		k = append(k, x)
	}
	slices.Sort(k)
	return k
}

func compareCounts[C math.Unsigned](expected, actual C) string {
	if expected == actual {
		return ""
	}
	return "expected " + formatCount(expected) +
		"; received " + formatCount(actual)
}

func formatCount[C math.Unsigned](c C) string {
	return strconv.FormatUint(uint64(c), 10)
}
