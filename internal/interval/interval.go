// Package interval provides an ordered map from closed integer intervals to
// values, used by the linker to track reserved number ranges.
package interval

import (
	"fmt"
	"iter"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints"
)

// Map maps closed intervals with integer endpoints in K to values of type V.
// Intervals in a Map never overlap; Insert reports the offender instead of
// inserting when they would.
//
// A zero value is ready to use.
type Map[K constraints.Integer, V any] struct {
	// Keyed by interval end, so that Seek(k) finds the first interval that
	// could contain k.
	tree btree.Map[K, *entry[K, V]]
}

type entry[K constraints.Integer, V any] struct {
	start K
	value V
}

// Interval is an interval held in a Map, as reported by Get and Insert.
// Value is nil when the Interval stands for "no interval".
type Interval[K constraints.Integer, V any] struct {
	Start, End K
	Value      *V
}

// Get looks up the interval containing key, if one exists.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	it := m.tree.Iter()
	if !it.Seek(key) || key < it.Value().start {
		// The found interval ends at or after key but starts after it, or
		// every interval ends before key.
		return Interval[K, V]{}
	}
	return Interval[K, V]{
		Start: it.Value().start,
		End:   it.Key(),
		Value: &it.Value().value,
	}
}

// Insert adds the interval [start, end] (both endpoints inclusive) with the
// given value. If the interval overlaps one already in the map, nothing is
// inserted and the lowest-starting overlapping interval is returned; the
// no-overlap case is distinguished by overlap.Value == nil.
func (m *Map[K, V]) Insert(start, end K, value V) (overlap Interval[K, V]) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}

	it := m.tree.Iter()
	if !it.Seek(start) {
		// Every existing interval ends before start, so [start, end] cannot
		// overlap anything.
		m.tree.Set(end, &entry[K, V]{start: start, value: value})
		return Interval[K, V]{}
	}

	// it is now at the first interval whose end is >= start. If that interval
	// begins after end, nothing overlaps.
	if end < it.Value().start {
		m.tree.Set(end, &entry[K, V]{start: start, value: value})
		return Interval[K, V]{}
	}

	return Interval[K, V]{
		Start: it.Value().start,
		End:   it.Key(),
		Value: &it.Value().value,
	}
}

// All returns an iterator over the intervals in the map, in ascending order.
func (m *Map[K, V]) All() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		it := m.tree.Iter()
		for more := it.First(); more; more = it.Next() {
			if !yield(Interval[K, V]{
				Start: it.Value().start,
				End:   it.Key(),
				Value: &it.Value().value,
			}) {
				return
			}
		}
	}
}
