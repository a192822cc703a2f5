package math

import "golang.org/x/exp/constraints"

// NumberInterface is a generic number interface for all number types.
type NumberInterface interface {
	constraints.Integer | constraints.Float
}

// Unsigned is the constraint satisfied by all multiplicity types.
type Unsigned interface{ constraints.Unsigned }

// Max calculates the maximum of two numbers.
func Max[T NumberInterface](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min calculates the minimum of two numbers.
func Min[T NumberInterface](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// MaxOf returns the maximum value representable by T.
func MaxOf[T Unsigned]() T {
	var z T
	return ^z
}

// AddSat adds a and b and saturates at MaxOf[T]
// instead of wrapping around.
func AddSat[T Unsigned](a, b T) T {
	if s := a + b; s >= a {
		return s
	}
	return MaxOf[T]()
}
