// Package compare defines the three-way, partial-order comparison contract
// used by the keep-policy engine.
package compare

import "cmp"

// Ordering is the result of comparing two roll values.
//
// Incomparable is a first-class outcome, not an error: it signals that no
// ordering can be established between the two operands. Callers decide
// whether that aborts their operation.
type Ordering int

const (
	Incomparable Ordering = iota
	Less
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Incomparable:
		return "incomparable"
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "unknown"
	}
}

// Comparator compares two values of the same type.
//
// A Comparator must be consistent (same inputs always produce the same
// result within one operation) but need not be total: it may return
// Incomparable for any pair.
type Comparator[V any] func(a, b V) Ordering

// Natural returns a Comparator using the type's natural order.
//
// Pairs the underlying comparison cannot order (e.g. NaN floats) yield
// Incomparable.
func Natural[V cmp.Ordered]() Comparator[V] {
	return func(a, b V) Ordering {
		switch {
		case a == b:
			return Equal
		case a < b:
			return Less
		case a > b:
			return Greater
		default:
			return Incomparable
		}
	}
}

// Reverse returns a Comparator that evaluates compare with its operands
// swapped, inverting Less and Greater while preserving Equal and
// Incomparable.
func Reverse[V any](compare Comparator[V]) Comparator[V] {
	return func(a, b V) Ordering {
		return compare(b, a)
	}
}
