// Package keep implements keep-policy combiners that reduce a roll to a
// bounded kept subsequence without sorting the whole roll.
//
// Combiners are immutable configuration: a constructed policy holds no
// per-roll state and may be reused across calls and goroutines. Each
// Combine call works on one transient sorted index set referencing the
// caller's roll, which stays read-only throughout.
package keep

import (
	"errors"

	"github.com/Kartagia/diceodel/internal/core/compare"
)

// ErrNegativeCount indicates a combiner was constructed with a negative
// keep count.
var ErrNegativeCount = errors.New("keep count must be non-negative")

// ErrEmptyRoll indicates a roll was empty where a kept value is required.
var ErrEmptyRoll = errors.New("roll must contain at least one value")

// ErrIncomparable indicates the roll contained a pair of values the active
// comparator could not order.
var ErrIncomparable = errors.New("cannot combine a roll containing non-comparable values")

// Combiner reduces a roll to a kept subsequence.
type Combiner[V any] interface {
	// Combine returns the kept values for roll, or a domain error. The
	// roll is read-only to the implementation and the result is always a
	// fresh slice.
	Combine(roll []V) ([]V, error)
}

// Best keeps the count largest values under a comparator, best first.
type Best[V any] struct {
	count int
	cmp   compare.Comparator[V]
}

// NewBest builds a keep-best combiner. count must be non-negative.
func NewBest[V any](count int, cmp compare.Comparator[V]) (*Best[V], error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	// Reversing the operand order makes the shared reduction rank the
	// largest values first, so the tail it trims holds the worst.
	return &Best[V]{count: count, cmp: compare.Reverse(cmp)}, nil
}

// Combine keeps the count largest values of roll, largest first.
func (b *Best[V]) Combine(roll []V) ([]V, error) {
	return reduce(roll, b.count, b.cmp)
}

// Worst keeps the count smallest values under a comparator, smallest first.
type Worst[V any] struct {
	count int
	cmp   compare.Comparator[V]
}

// NewWorst builds a keep-worst combiner. count must be non-negative.
func NewWorst[V any](count int, cmp compare.Comparator[V]) (*Worst[V], error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	return &Worst[V]{count: count, cmp: cmp}, nil
}

// Combine keeps the count smallest values of roll, smallest first.
func (w *Worst[V]) Combine(roll []V) ([]V, error) {
	return reduce(roll, w.count, w.cmp)
}

// Last keeps the final count values of a roll in their original order. It
// performs no comparisons, so it can never fail on incomparable values.
type Last[V any] struct {
	count int
}

// NewLast builds a keep-last combiner. count must be non-negative.
func NewLast[V any](count int) (*Last[V], error) {
	if count < 0 {
		return nil, ErrNegativeCount
	}
	return &Last[V]{count: count}, nil
}

// Combine returns the final min(count, len(roll)) values of roll verbatim.
func (l *Last[V]) Combine(roll []V) ([]V, error) {
	start := len(roll) - l.count
	if start < 0 {
		start = 0
	}
	kept := make([]V, len(roll)-start)
	copy(kept, roll[start:])
	return kept, nil
}

// NewValue returns the most recently rolled value. It is the single-value
// form of NewLast(1) and fails on an empty roll.
func NewValue[V any](roll []V) (V, error) {
	var zero V
	if len(roll) == 0 {
		return zero, ErrEmptyRoll
	}
	return roll[len(roll)-1], nil
}

// BestValue returns the single largest value of roll under cmp. It fails on
// an empty roll or when the roll contains a non-comparable pair.
func BestValue[V any](roll []V, cmp compare.Comparator[V]) (V, error) {
	combiner, err := NewBest(1, cmp)
	if err != nil {
		var zero V
		return zero, err
	}
	return singleValue(roll, combiner)
}

// WorstValue returns the single smallest value of roll under cmp. It fails
// on an empty roll or when the roll contains a non-comparable pair.
func WorstValue[V any](roll []V, cmp compare.Comparator[V]) (V, error) {
	combiner, err := NewWorst(1, cmp)
	if err != nil {
		var zero V
		return zero, err
	}
	return singleValue(roll, combiner)
}

// singleValue unwraps a count=1 combiner result into a single value.
func singleValue[V any](roll []V, combiner Combiner[V]) (V, error) {
	var zero V
	if len(roll) == 0 {
		return zero, ErrEmptyRoll
	}
	kept, err := combiner.Combine(roll)
	if err != nil {
		return zero, err
	}
	return kept[0], nil
}

// reduce runs the shared single-pass reduction: it maintains a sorted index
// set bounded to count entries, inserting each roll position in turn and
// trimming the tail when the bound is exceeded.
//
// New entries land after the last index of their equal-run, so
// earlier-rolled equal values keep their rank ahead of later-rolled ones.
func reduce[V any](roll []V, count int, cmp compare.Comparator[V]) ([]V, error) {
	if count == 0 {
		return []V{}, nil
	}

	limit := count + 1
	if len(roll) < count {
		limit = len(roll) + 1
	}
	indexes := make([]int, 0, limit)

	for i := range roll {
		pos, ok := SearchIndexes(roll, indexes, roll[i], cmp)
		if !ok {
			return nil, ErrIncomparable
		}
		var at int
		if pos >= 0 {
			at = ResolveEqualRun(roll, indexes, pos, roll[i], cmp, false) + 1
		} else {
			at = -1 - pos
		}

		indexes = append(indexes, 0)
		copy(indexes[at+1:], indexes[at:])
		indexes[at] = i
		if len(indexes) > count {
			indexes = indexes[:count]
		}
	}

	kept := make([]V, len(indexes))
	for i, idx := range indexes {
		kept[i] = roll[idx]
	}
	return kept, nil
}
