package collections

import "slices"

// Operators in this file need the whole sequence before they can emit the
// first pair, so they materialize their input and return a *Collection.

// Reverse returns the values in reverse order, re-indexed from 0.
func Reverse[K comparable, V any](s Sequence[K, V]) *Collection[int, V] {
	c := Materialize(s)
	materialized("reverse", s, c)
	out := newCollection[int, V](c.Count())
	for i := c.Count() - 1; i >= 0; i-- {
		out.Put(out.Count(), c.vals[i])
	}
	return out
}

// ReversePreserve returns the pairs in reverse order with their keys intact.
func ReversePreserve[K comparable, V any](s Sequence[K, V]) *Collection[K, V] {
	c := Materialize(s)
	materialized("reverse", s, c)
	out := newCollection[K, V](c.Count())
	for i := c.Count() - 1; i >= 0; i-- {
		out.Put(c.keys[i], c.vals[i])
	}
	return out
}

// Sort orders the values by fn (negative means a before b) and re-indexes
// them from 0. A nil fn uses [Natural]. The sort is stable.
func Sort[K comparable, V any](s Sequence[K, V], fn func(a, b V) int) *Collection[int, V] {
	if fn == nil {
		fn = naturalOf[V]()
	}
	c := Materialize(s)
	materialized("sort", s, c)
	vals := slices.Clone(c.vals)
	slices.SortStableFunc(vals, fn)
	return From(vals)
}

// KSort orders the pairs by comparing their keys with fn, keeping every key
// attached to its value. A nil fn uses [Natural]. The sort is stable.
func KSort[K comparable, V any](s Sequence[K, V], fn func(a, b K) int) *Collection[K, V] {
	if fn == nil {
		fn = naturalOf[K]()
	}
	c := Materialize(s)
	materialized("ksort", s, c)
	pairs := c.Pairs()
	slices.SortStableFunc(pairs, func(a, b Pair[K, V]) int { return fn(a.Key, b.Key) })
	out := newCollection[K, V](len(pairs))
	for _, p := range pairs {
		out.Put(p.Key, p.Value)
	}
	return out
}

// Unique keeps the first pair for each distinct value (compared with ==) and
// drops later duplicates. Keys are preserved.
func Unique[K, V comparable](s Sequence[K, V]) *Collection[K, V] {
	return UniqueBy(s, func(v V) any { return v })
}

// UniqueBy is [Unique] for any value type: fn extracts the comparison key.
// Pass nil to compare the [Stringify] form of each value.
func UniqueBy[K comparable, V any](s Sequence[K, V], fn func(V) any) *Collection[K, V] {
	if fn == nil {
		fn = func(v V) any { return Stringify(v) }
	}
	out := newCollection[K, V](0)
	seen := make(map[any]struct{})
	cur := s.Iter()
	defer cur.Close()
	for {
		k, v, ok := cur.Next()
		if !ok {
			return out
		}
		key := fn(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Put(k, v)
	}
}

// Shuffle returns the values in an order chosen by src, re-indexed from 0.
// A nil src uses [DefaultShuffler].
func Shuffle[K comparable, V any](s Sequence[K, V], src Shuffler) *Collection[int, V] {
	if src == nil {
		src = DefaultShuffler
	}
	c := Materialize(s)
	materialized("shuffle", s, c)
	vals := slices.Clone(c.vals)
	src.Shuffle(len(vals), func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
	return From(vals)
}
