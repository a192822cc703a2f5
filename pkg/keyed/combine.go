package keyed

import (
	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/math"
)

// Intersect returns a new multiset holding every key present in both
// m and o with the minimum of their raw multiplicities.
// The caps of both operands are ignored and the result has no cap.
func (m *Multiset[K, C]) Intersect(o *Multiset[K, C]) *Multiset[K, C] {
	r := m.Clone()
	r.IntersectAssign(o)
	r.SetCap(capped.None[C]())
	return r
}

// Union returns a new multiset holding every key present in either
// m or o with the maximum of their raw multiplicities.
// The caps of both operands are ignored and the result has no cap.
func (m *Multiset[K, C]) Union(o *Multiset[K, C]) *Multiset[K, C] {
	r := m.Clone()
	r.UnionAssign(o)
	r.SetCap(capped.None[C]())
	return r
}

// IntersectAssign keeps only keys present in both m and o
// setting each to the minimum of both multiplicities.
// The cap of m is preserved.
func (m *Multiset[K, C]) IntersectAssign(o *Multiset[K, C]) {
	for k, c := range m.elements {
		if v, ok := o.elements[k]; ok {
			m.elements[k] = math.Min(c, v)
			continue
		}
		delete(m.elements, k)
	}
}

// UnionAssign sets every key of o in m to the maximum
// of both multiplicities. The cap of m is preserved.
func (m *Multiset[K, C]) UnionAssign(o *Multiset[K, C]) {
	if m.elements == nil {
		m.elements = make(map[K]C, len(o.elements))
	}
	for k, c := range o.elements {
		m.elements[k] = math.Max(m.elements[k], c)
	}
}
