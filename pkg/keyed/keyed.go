// Package keyed provides a capped multiset aggregating
// the multiplicity of every distinct key.
//
// The cap is applied to the aggregated multiplicity of a key,
// never to individual insertions. Insertion is cap-oblivious
// which makes lowering the cap a lossless operation.
package keyed

import (
	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/math"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Multiset is a capped multiset of keys.
//
// The zero value is an empty multiset without a cap.
// Multiset isn't safe for concurrent use.
type Multiset[K constraints.Ordered, C math.Unsigned] struct {
	elements map[K]C
	cap      capped.Cap[C]
}

// New creates a new empty multiset with the given cap.
func New[K constraints.Ordered, C math.Unsigned](
	cap capped.Cap[C],
) *Multiset[K, C] {
	return &Multiset[K, C]{
		elements: make(map[K]C),
		cap:      cap,
	}
}

// FromKeys creates a new multiset without a cap
// inserting every key once.
func FromKeys[K constraints.Ordered, C math.Unsigned](
	keys ...K,
) *Multiset[K, C] {
	m := &Multiset[K, C]{elements: make(map[K]C, len(keys))}
	for _, k := range keys {
		m.Insert(k)
	}
	return m
}

// Insert inserts k once.
func (m *Multiset[K, C]) Insert(k K) { m.InsertMultiple(k, 1) }

// InsertMultiple increases the multiplicity of k by n.
// The multiplicity saturates at the maximum value of C.
func (m *Multiset[K, C]) InsertMultiple(k K, n C) {
	if m.elements == nil {
		m.elements = make(map[K]C)
	}
	m.elements[k] = math.AddSat(m.elements[k], n)
}

// SetCap replaces the cap. Stored multiplicities remain untouched.
func (m *Multiset[K, C]) SetCap(cap capped.Cap[C]) { m.cap = cap }

// Cap returns the current cap.
func (m *Multiset[K, C]) Cap() capped.Cap[C] { return m.cap }

// CountOf returns the multiplicity of k limited by the cap.
// Returns 0 if k isn't in the multiset.
func (m *Multiset[K, C]) CountOf(k K) C {
	return m.cap.Apply(m.elements[k])
}

// Contains returns true if k was inserted.
func (m *Multiset[K, C]) Contains(k K) bool {
	_, ok := m.elements[k]
	return ok
}

// Len returns the number of distinct keys.
func (m *Multiset[K, C]) Len() int { return len(m.elements) }

// Sum returns the sum of the capped multiplicities of all keys.
// The sum saturates at the maximum value of C.
func (m *Multiset[K, C]) Sum() (sum C) {
	for _, c := range m.elements {
		sum = math.AddSat(sum, m.cap.Apply(c))
	}
	return sum
}

// Keys returns all distinct keys in ascending order.
func (m *Multiset[K, C]) Keys() []K {
	k := make([]K, 0, len(m.elements))
	for x := range m.elements {
		k = append(k, x)
	}
	slices.Sort(k)
	return k
}

// Visit calls fn for every key and its capped multiplicity
// in ascending key order until fn returns true.
func (m *Multiset[K, C]) Visit(fn func(K, C) (stop bool)) {
	for _, k := range m.Keys() {
		if fn(k, m.cap.Apply(m.elements[k])) {
			return
		}
	}
}

// Counts returns a copy of the stored multiplicities ignoring the cap.
func (m *Multiset[K, C]) Counts() map[K]C {
	c := make(map[K]C, len(m.elements))
	for k, v := range m.elements {
		c[k] = v
	}
	return c
}

// Clone returns a deep copy of m.
func (m *Multiset[K, C]) Clone() *Multiset[K, C] {
	return &Multiset[K, C]{elements: m.Counts(), cap: m.cap}
}

// Equal returns true if m and o store the same multiplicities
// and share the same cap.
func (m *Multiset[K, C]) Equal(o *Multiset[K, C]) bool {
	return m.cap == o.cap && maps.Equal(m.elements, o.elements)
}
