// Package positional provides a capped multiset keeping every value
// at its own position. Duplicates are never merged which allows
// element-wise union and intersection.
package positional

import (
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/math"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/slices"
)

// LengthPolicy defines how operands of different length
// are combined by Union and Intersect.
type LengthPolicy int8

const (
	_ LengthPolicy = iota

	// Truncate zips both operands to the shorter length,
	// trailing elements of the longer operand are ignored.
	Truncate

	// ZeroPad treats the shorter operand as if it was
	// padded with zeros up to the longer length.
	ZeroPad

	// Strict rejects operands of different length
	// with *ErrorLengthMismatch.
	Strict
)

func (p LengthPolicy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case ZeroPad:
		return "zero_pad"
	case Strict:
		return "strict"
	}
	return "LengthPolicy(" + strconv.Itoa(int(p)) + ")"
}

// Multiset is a capped multiset of positioned values.
//
// Multiset isn't safe for concurrent use.
type Multiset[C math.Unsigned] struct {
	elements []C
	cap      capped.Cap[C]
	policy   LengthPolicy
}

// New creates a new multiset from elements without a cap.
// elements is copied.
func New[C math.Unsigned](elements ...C) *Multiset[C] {
	return WithCap(capped.None[C](), elements...)
}

// From converts s into a new multiset without a cap.
// s is copied and can be reused by the caller.
func From[C math.Unsigned, S ~[]C](s S) *Multiset[C] {
	return New([]C(s)...)
}

// WithCap creates a new multiset from elements with the given cap.
func WithCap[C math.Unsigned](cap capped.Cap[C], elements ...C) *Multiset[C] {
	e := make([]C, len(elements))
	copy(e, elements)
	return &Multiset[C]{
		elements: e,
		cap:      cap,
		policy:   Truncate,
	}
}

// SetCap replaces the cap. Stored elements remain untouched.
func (m *Multiset[C]) SetCap(cap capped.Cap[C]) { m.cap = cap }

// Cap returns the current cap.
func (m *Multiset[C]) Cap() capped.Cap[C] { return m.cap }

// SetLengthPolicy sets the policy used for
// combining operands of different length.
// Unknown policies are replaced with Truncate.
func (m *Multiset[C]) SetLengthPolicy(p LengthPolicy) {
	switch p {
	case Truncate, ZeroPad, Strict:
	default:
		p = Truncate
	}
	m.policy = p
}

// LengthPolicy returns the current length policy.
func (m *Multiset[C]) LengthPolicy() LengthPolicy { return m.policy }

// Push appends v as a new element.
func (m *Multiset[C]) Push(v C) { m.elements = append(m.elements, v) }

// Len returns the number of positions.
func (m *Multiset[C]) Len() int { return len(m.elements) }

// At returns the capped value at position i.
func (m *Multiset[C]) At(i int) C { return m.cap.Apply(m.elements[i]) }

// Raw returns the stored value at position i ignoring the cap.
func (m *Multiset[C]) Raw(i int) C { return m.elements[i] }

// Elements returns a copy of the stored values ignoring the cap.
func (m *Multiset[C]) Elements() []C {
	return slices.Clone(m.elements)
}

// Sum returns the sum of all elements each limited by the cap.
// The sum saturates at the maximum value of C.
func (m *Multiset[C]) Sum() (sum C) {
	for _, v := range m.elements {
		sum = math.AddSat(sum, m.cap.Apply(v))
	}
	return sum
}

// Clone returns a deep copy of m.
func (m *Multiset[C]) Clone() *Multiset[C] {
	return &Multiset[C]{
		elements: slices.Clone(m.elements),
		cap:      m.cap,
		policy:   m.policy,
	}
}

// Equal returns true if m and o store the same elements
// in the same order and share the same cap.
func (m *Multiset[C]) Equal(o *Multiset[C]) bool {
	return m.cap == o.cap && slices.Equal(m.elements, o.elements)
}

// Hash returns the XXH3 hash of the stored elements and the cap.
// Equal multisets produce equal hashes.
func (m *Multiset[C]) Hash() uint64 {
	h := xxh3.New()
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(len(m.elements)))
	_, _ = h.Write(b[:])
	for _, v := range m.elements {
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		_, _ = h.Write(b[:])
	}
	if c, ok := m.cap.Value(); ok {
		binary.LittleEndian.PutUint64(b[:], uint64(c))
		_, _ = h.Write([]byte{1})
		_, _ = h.Write(b[:])
	} else {
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func (m *Multiset[C]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range m.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	b.WriteString("] cap=")
	b.WriteString(m.cap.String())
	return b.String()
}
