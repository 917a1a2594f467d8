package keep

import "github.com/Kartagia/diceodel/internal/core/compare"

// SearchIndexes binary-searches a sorted index set for seek.
//
// indexes holds positions into roll, ordered so that roll[indexes[i]] is
// non-decreasing under cmp. The roll itself is never copied or mutated.
//
// When a position referencing a value equal to seek exists, its offset in
// indexes is returned. Otherwise the result encodes the insertion offset
// that keeps the set sorted as -1 - offset.
//
// If any comparison along the search path yields Incomparable, the second
// return value is false and the position is meaningless. Callers must treat
// that as an abort signal, not as "equal" or "not found".
func SearchIndexes[V any](roll []V, indexes []int, seek V, cmp compare.Comparator[V]) (int, bool) {
	low, high := 0, len(indexes)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		switch cmp(seek, roll[indexes[mid]]) {
		case compare.Less:
			high = mid - 1
		case compare.Greater:
			low = mid + 1
		case compare.Equal:
			return mid, true
		default:
			return 0, false
		}
	}
	return -1 - low, true
}

// ResolveEqualRun adjusts a SearchIndexes result to a deterministic end of
// the matched equal-run.
//
// When pos references an existing position, the returned offset is the first
// (first == true) or last index of the maximal run of values equal to seek.
// Insertion markers (pos < 0) pass through unchanged. The walk is linear in
// the run length, not the whole set.
//
// The walk extends the run only across neighbors that compare Equal, so any
// other outcome, Incomparable included, marks the run boundary. It assumes
// the comparator is consistent with the search that produced pos; with such
// a comparator an Incomparable neighbor cannot lie inside the run, and the
// walk has no abort path of its own.
func ResolveEqualRun[V any](roll []V, indexes []int, pos int, seek V, cmp compare.Comparator[V], first bool) int {
	if pos < 0 {
		return pos
	}
	if first {
		for pos > 0 && cmp(seek, roll[indexes[pos-1]]) == compare.Equal {
			pos--
		}
		return pos
	}
	for pos < len(indexes)-1 && cmp(seek, roll[indexes[pos+1]]) == compare.Equal {
		pos++
	}
	return pos
}
