package collections

import "math"

// This file holds the operators that return a lazy sequence. Each one wraps
// its input in a producer and does no work until the result is traversed;
// every cursor closes its upstream when closed.
//
//	evens := collections.Filter(collections.Range(1, 1_000_000),
//	    func(n, _ int) bool { return n%2 == 0 })
//	first := collections.Slice(evens, 0, 3) // nothing has been pulled yet
//	collections.Materialize(first).Values() // → [2 4 6]

// Map yields (k, fn(v, k)) for every input pair. Keys are preserved.
func Map[K comparable, V, U any](s Sequence[K, V], fn func(V, K) U) *Lazy[K, U] {
	return Defer(func() Cursor[K, U] {
		up := s.Iter()
		return derived(up, func() (K, U, bool) {
			k, v, ok := up.Next()
			if !ok {
				var u U
				return k, u, false
			}
			return k, fn(v, k), true
		})
	})
}

// Filter yields the pairs for which fn(v, k) returns true. A nil fn keeps the
// values that are [Truthy]. Keys are preserved.
func Filter[K comparable, V any](s Sequence[K, V], fn func(V, K) bool) *Lazy[K, V] {
	if fn == nil {
		fn = func(v V, _ K) bool { return Truthy(v) }
	}
	return Defer(func() Cursor[K, V] {
		up := s.Iter()
		return derived(up, func() (K, V, bool) {
			for {
				k, v, ok := up.Next()
				if !ok || fn(v, k) {
					return k, v, ok
				}
			}
		})
	})
}

// Keys yields the input keys as values, re-indexed from 0.
func Keys[K comparable, V any](s Sequence[K, V]) *Lazy[int, K] {
	return Defer(func() Cursor[int, K] {
		up := s.Iter()
		i := 0
		return derived(up, func() (int, K, bool) {
			k, _, ok := up.Next()
			if !ok {
				return 0, k, false
			}
			i++
			return i - 1, k, true
		})
	})
}

// Values yields the input values, discarding keys and re-indexing from 0.
func Values[K comparable, V any](s Sequence[K, V]) *Lazy[int, V] {
	return reindex(s)
}

func reindex[K comparable, V any](s Sequence[K, V]) *Lazy[int, V] {
	return Defer(func() Cursor[int, V] {
		up := s.Iter()
		i := 0
		return derived(up, func() (int, V, bool) {
			_, v, ok := up.Next()
			if !ok {
				return 0, v, false
			}
			i++
			return i - 1, v, true
		})
	})
}

// Chunk groups consecutive values into collections of at most size elements,
// keyed 0…size-1 inside each chunk. A chunk is emitted as soon as it fills;
// a non-empty remainder is emitted at the end.
//
// Panics with [ErrInvalidChunkSize] if size < 1.
func Chunk[K comparable, V any](s Sequence[K, V], size int) *Lazy[int, *Collection[int, V]] {
	return chunk(s, size, func(c *Collection[int, V], _ K, v V) { c.Put(c.Count(), v) })
}

// ChunkPreserve is [Chunk] keeping the original keys inside each chunk.
func ChunkPreserve[K comparable, V any](s Sequence[K, V], size int) *Lazy[int, *Collection[K, V]] {
	return chunk(s, size, func(c *Collection[K, V], k K, v V) { c.Put(k, v) })
}

// maxChunkPrealloc caps the capacity reserved up front for each chunk.
const maxChunkPrealloc = 64

func chunk[K comparable, V any, CK comparable](s Sequence[K, V], size int, add func(*Collection[CK, V], K, V)) *Lazy[int, *Collection[CK, V]] {
	if size < 1 {
		panic(ErrInvalidChunkSize)
	}
	capacity := min(size, maxChunkPrealloc)
	return Defer(func() Cursor[int, *Collection[CK, V]] {
		up := s.Iter()
		n := 0
		return derived(up, func() (int, *Collection[CK, V], bool) {
			c := newCollection[CK, V](capacity)
			for c.Count() < size {
				k, v, ok := up.Next()
				if !ok {
					break
				}
				add(c, k, v)
			}
			if c.IsEmpty() {
				return 0, nil, false
			}
			n++
			return n - 1, c, true
		})
	})
}

// rangeEpsilon absorbs the rounding error of a float step that does not
// divide the span exactly. Integer types need none.
func rangeEpsilon[N Number]() float64 {
	half, fine := 0.5, 1+1e-12
	switch {
	case N(half) == 0:
		return 0
	case N(fine) == 1:
		return 1e-5
	}
	return 1e-9
}

// Range counts from start toward end, inclusive, in increments of |step|
// (default 1; a zero step is treated as 1). The direction follows from
// comparing start and end, so the sign of step is ignored. The sequence has
// floor(|end-start|/|step|)+1 elements.
//
//	collections.Range(1, 5)        // 1 2 3 4 5
//	collections.Range(10, 0, 5)    // 10 5 0
//	collections.Range(0.0, 1.0, 0.25)
func Range[N Number](start, end N, step ...N) *Lazy[int, N] {
	var st N = 1
	if len(step) > 0 && step[0] != 0 {
		st = step[0]
		if st < 0 {
			st = -st
		}
	}
	ascending := start <= end
	span := float64(end) - float64(start)
	if span < 0 {
		span = -span
	}
	count := int(math.Floor(span/float64(st)+rangeEpsilon[N]())) + 1

	return Defer(func() Cursor[int, N] {
		i := 0
		return &funcCursor[int, N]{next: func() (int, N, bool) {
			if i >= count {
				return 0, 0, false
			}
			offset := N(i) * st
			i++
			if ascending {
				return i - 1, start + offset, true
			}
			return i - 1, start - offset, true
		}}
	})
}

// Slice yields the values at positions [start, start+length), re-indexed
// from 0. Omitting length runs to the end.
//
// With start ≥ 0 and length absent or ≥ 0 the result is lazy and stops
// pulling once length values have been emitted, so it is safe on unbounded
// producers. A negative start counts from the end; a negative length stops
// that many values before the end. Both need the total length, so they
// materialize the input first.
func Slice[K comparable, V any](s Sequence[K, V], start int, length ...int) Sequence[int, V] {
	return reindex(SlicePreserve(s, start, length...))
}

// SlicePreserve is [Slice] keeping the original keys.
func SlicePreserve[K comparable, V any](s Sequence[K, V], start int, length ...int) Sequence[K, V] {
	limit := -1
	if len(length) > 0 {
		limit = length[0]
	}
	if start < 0 || (len(length) > 0 && length[0] < 0) {
		return sliceEager(s, start, length...)
	}
	return Defer(func() Cursor[K, V] {
		up := s.Iter()
		skipped, emitted := 0, 0
		return derived(up, func() (K, V, bool) {
			var k K
			var v V
			if limit >= 0 && emitted >= limit {
				return k, v, false
			}
			for skipped < start {
				if _, _, ok := up.Next(); !ok {
					return k, v, false
				}
				skipped++
			}
			k, v, ok := up.Next()
			if ok {
				emitted++
			}
			return k, v, ok
		})
	})
}

func sliceEager[K comparable, V any](s Sequence[K, V], start int, length ...int) *Collection[K, V] {
	c := Materialize(s)
	materialized("slice", s, c)
	total := c.Count()
	if start < 0 {
		start = max(total+start, 0)
	}
	end := total
	if len(length) > 0 {
		if length[0] < 0 {
			end = total + length[0]
		} else {
			end = min(start+length[0], total)
		}
	}
	out := newCollection[K, V](max(end-start, 0))
	for i := start; i < end; i++ {
		out.Put(c.keys[i], c.vals[i])
	}
	return out
}
