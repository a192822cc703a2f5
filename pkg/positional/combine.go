package positional

import (
	"strconv"
	"strings"

	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/math"
)

// ErrorLengthMismatch is returned when operands of different length
// are combined under the Strict policy.
type ErrorLengthMismatch struct {
	Left, Right int
}

func (e ErrorLengthMismatch) Error() string {
	var b strings.Builder
	b.WriteString("length mismatch: ")
	b.WriteString(strconv.Itoa(e.Left))
	b.WriteString(" != ")
	b.WriteString(strconv.Itoa(e.Right))
	return b.String()
}

// Intersect returns a new multiset with the element-wise minimum
// of the raw values of m and o. The caps of both operands are ignored
// and the result has no cap.
func (m *Multiset[C]) Intersect(o *Multiset[C]) (*Multiset[C], error) {
	r := m.Clone()
	if err := r.IntersectAssign(o); err != nil {
		return nil, err
	}
	r.SetCap(capped.None[C]())
	return r, nil
}

// Union returns a new multiset with the element-wise maximum
// of the raw values of m and o. The caps of both operands are ignored
// and the result has no cap.
func (m *Multiset[C]) Union(o *Multiset[C]) (*Multiset[C], error) {
	r := m.Clone()
	if err := r.UnionAssign(o); err != nil {
		return nil, err
	}
	r.SetCap(capped.None[C]())
	return r, nil
}

// IntersectAssign replaces every element of m with the minimum
// of itself and the element of o at the same position.
// The cap of m is preserved.
func (m *Multiset[C]) IntersectAssign(o *Multiset[C]) error {
	return m.combine(o, math.Min[C])
}

// UnionAssign replaces every element of m with the maximum
// of itself and the element of o at the same position.
// The cap of m is preserved.
func (m *Multiset[C]) UnionAssign(o *Multiset[C]) error {
	return m.combine(o, math.Max[C])
}

func (m *Multiset[C]) combine(o *Multiset[C], fn func(a, b C) C) error {
	n := len(m.elements)
	if len(o.elements) < n {
		n = len(o.elements)
	}

	switch m.policy {
	case Strict:
		if len(m.elements) != len(o.elements) {
			return &ErrorLengthMismatch{
				Left:  len(m.elements),
				Right: len(o.elements),
			}
		}
	case ZeroPad:
		// Positions beyond the end of o combine with zero.
		for i := n; i < len(m.elements); i++ {
			m.elements[i] = fn(m.elements[i], 0)
		}
		for _, v := range o.elements[n:] {
			m.elements = append(m.elements, fn(0, v))
		}
	default:
		m.elements = m.elements[:n]
	}

	for i := 0; i < n; i++ {
		m.elements[i] = fn(m.elements[i], o.elements[i])
	}
	return nil
}
