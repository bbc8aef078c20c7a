package collections

import "strings"

// Terminal operators: each drains its input in a single pass and returns a
// scalar. Only In stops early.

// Reduce folds the values left to right: acc = fn(acc, v), starting from
// initial. Keys are ignored.
//
//	collections.Reduce(collections.New(2, 3, 4),
//	    func(acc, n int) int { return acc - n }, 1) // → -8
func Reduce[K comparable, V, A any](s Sequence[K, V], fn func(A, V) A, initial A) A {
	acc := initial
	cur := s.Iter()
	defer cur.Close()
	for {
		_, v, ok := cur.Next()
		if !ok {
			return acc
		}
		acc = fn(acc, v)
	}
}

// Min returns the smallest value according to fn (nil uses [Natural]).
// When several values tie, the first wins. Returns the zero value and false
// for an empty sequence.
func Min[K comparable, V any](s Sequence[K, V], fn func(a, b V) int) (V, bool) {
	if fn == nil {
		fn = naturalOf[V]()
	}
	cur := s.Iter()
	defer cur.Close()
	_, best, ok := cur.Next()
	if !ok {
		return best, false
	}
	for {
		_, v, ok := cur.Next()
		if !ok {
			return best, true
		}
		if fn(v, best) < 0 {
			best = v
		}
	}
}

// Max is [Min] with the comparator's arguments swapped.
func Max[K comparable, V any](s Sequence[K, V], fn func(a, b V) int) (V, bool) {
	if fn == nil {
		fn = naturalOf[V]()
	}
	return Min(s, Swap(fn))
}

// Sum returns the arithmetic sum of the values.
func Sum[K comparable, V Number](s Sequence[K, V]) V {
	return Reduce(s, func(acc, v V) V { return acc + v }, 0)
}

// Count drains s and returns the number of pairs.
func Count[K comparable, V any](s Sequence[K, V]) int {
	if c, ok := s.(*Collection[K, V]); ok {
		return c.Count()
	}
	return Reduce(s, func(n int, _ V) int { return n + 1 }, 0)
}

// Implode joins the values with glue, converting each with fn
// (nil uses [Stringify]).
func Implode[K comparable, V any](s Sequence[K, V], glue string, fn func(V) string) string {
	if fn == nil {
		fn = func(v V) string { return Stringify(v) }
	}
	var b strings.Builder
	first := true
	cur := s.Iter()
	defer cur.Close()
	for {
		_, v, ok := cur.Next()
		if !ok {
			return b.String()
		}
		if !first {
			b.WriteString(glue)
		}
		first = false
		b.WriteString(fn(v))
	}
}

// In reports whether any value == needle. It stops at the first match.
func In[K, V comparable](s Sequence[K, V], needle V) bool {
	return InFunc(s, needle, func(a, b V) bool { return a == b })
}

// InFunc reports whether eq(v, needle) holds for any value. It stops at the
// first match. Use [LooseEqual] or [StrictEqual] for untyped values.
func InFunc[K comparable, V any](s Sequence[K, V], needle V, eq func(a, b V) bool) bool {
	cur := s.Iter()
	defer cur.Close()
	for {
		_, v, ok := cur.Next()
		if !ok {
			return false
		}
		if eq(v, needle) {
			return true
		}
	}
}

// Tap materializes s, hands the collection to fn for its side effects and
// returns that same collection. fn never sees the lazy input.
func Tap[K comparable, V any](s Sequence[K, V], fn func(*Collection[K, V])) *Collection[K, V] {
	c := Materialize(s)
	materialized("tap", s, c)
	fn(c)
	return c
}
