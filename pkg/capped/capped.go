// Package capped provides the optional read-time ceiling
// shared by all capped multiset variants.
//
// A Cap never modifies the values it's applied to,
// it only limits what is read.
package capped

import (
	"strconv"
	"strings"

	"github.com/graph-guard/cmset/pkg/math"
)

// KeywordNone is the textual representation of an absent cap.
const KeywordNone = "none"

// Cap is either absent (unbounded) or a finite upper bound.
// The zero value is an absent cap.
type Cap[C math.Unsigned] struct {
	v   C
	set bool
}

// None returns an absent cap.
func None[C math.Unsigned]() Cap[C] { return Cap[C]{} }

// At returns a cap bounding values at c.
func At[C math.Unsigned](c C) Cap[C] { return Cap[C]{v: c, set: true} }

// Apply returns v limited by the cap.
func (c Cap[C]) Apply(v C) C {
	if c.set && v > c.v {
		return c.v
	}
	return v
}

// Value returns the bound and true if the cap is set.
func (c Cap[C]) Value() (C, bool) { return c.v, c.set }

// IsSet returns true if the cap is set.
func (c Cap[C]) IsSet() bool { return c.set }

// Limit returns the effective bound which is
// the maximum value of C when the cap is absent.
func (c Cap[C]) Limit() C {
	if !c.set {
		return math.MaxOf[C]()
	}
	return c.v
}

func (c Cap[C]) String() string {
	if !c.set {
		return KeywordNone
	}
	return strconv.FormatUint(uint64(c.v), 10)
}

// Parse parses s as either "none" (or an empty string)
// or a decimal bound fitting into C.
func Parse[C math.Unsigned](s string) (Cap[C], error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, KeywordNone) {
		return None[C](), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v > uint64(math.MaxOf[C]()) {
		return Cap[C]{}, &ErrorIllegal{Input: s}
	}
	return At(C(v)), nil
}

// ErrorIllegal is returned by Parse for malformed input.
type ErrorIllegal struct {
	Input string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.Grow(len("illegal cap: ") + len(e.Input) + 2)
	b.WriteString("illegal cap: ")
	b.WriteString(strconv.Quote(e.Input))
	return b.String()
}
