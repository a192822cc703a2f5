package scenario

import (
	"fmt"

	"github.com/graph-guard/cmset/pkg/capped"
	"github.com/graph-guard/cmset/pkg/keyed"
	"github.com/graph-guard/cmset/pkg/positional"
)

type Kind string

const (
	KindPositional Kind = "positional"
	KindKeyed      Kind = "keyed"
)

// Result is the outcome of a single scenario.
type Result struct {
	Name  string
	Kind  Kind
	Lines []Line
}

// Line is a single labeled count of a Result.
type Line struct {
	Label string
	Value uint64
}

// Evaluate evaluates all positional scenarios followed by
// all keyed scenarios in declaration order.
func (d *Document) Evaluate() ([]Result, error) {
	r := make([]Result, 0, len(d.Positional)+len(d.Keyed))
	for _, s := range d.Positional {
		res, err := s.Evaluate()
		if err != nil {
			return nil, err
		}
		r = append(r, res)
	}
	for _, s := range d.Keyed {
		r = append(r, s.Evaluate())
	}
	return r, nil
}

// Evaluate computes the uncapped sum, the sum under every cap
// and the sums of the requested combinations.
func (s *Positional) Evaluate() (Result, error) {
	r := Result{Name: s.Name, Kind: KindPositional}
	m := positional.New(s.Elements...)
	m.SetLengthPolicy(s.LengthPolicy)

	r.Lines = append(r.Lines, sumLine(m.Cap(), m.Sum()))
	for _, c := range s.Caps {
		m.SetCap(c)
		r.Lines = append(r.Lines, sumLine(c, m.Sum()))
	}
	m.SetCap(capped.None[uint64]())

	if s.Union != nil {
		u, err := m.Union(positional.New(s.Union...))
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q: union: %w", s.Name, err)
		}
		r.Lines = append(r.Lines, Line{Label: "union sum", Value: u.Sum()})
	}
	if s.Intersect != nil {
		i, err := m.Intersect(positional.New(s.Intersect...))
		if err != nil {
			return Result{}, fmt.Errorf("scenario %q: intersect: %w", s.Name, err)
		}
		r.Lines = append(r.Lines, Line{Label: "intersect sum", Value: i.Sum()})
	}
	return r, nil
}

// Evaluate performs all insertions and reports the count of every
// queried key followed by the sum under the initial cap
// and under every additional cap.
func (s *Keyed) Evaluate() Result {
	r := Result{Name: s.Name, Kind: KindKeyed}
	m := keyed.New[string, uint64](s.Cap)
	for _, in := range s.Insert {
		m.InsertMultiple(in.Key, in.Count)
	}

	for _, k := range s.Query {
		r.Lines = append(r.Lines, Line{
			Label: fmt.Sprintf("count_of %q", k),
			Value: m.CountOf(k),
		})
	}
	r.Lines = append(r.Lines, sumLine(m.Cap(), m.Sum()))
	for _, c := range s.Caps {
		m.SetCap(c)
		r.Lines = append(r.Lines, sumLine(c, m.Sum()))
	}
	return r
}

func sumLine(c capped.Cap[uint64], sum uint64) Line {
	return Line{Label: "sum cap=" + c.String(), Value: sum}
}
