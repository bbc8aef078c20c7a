package collections

import "iter"

// ─────────────────────────────────────────────────────────────────────────────
// Cursors
// ─────────────────────────────────────────────────────────────────────────────

// funcCursor adapts a pair of closures to the Cursor interface.
type funcCursor[K comparable, V any] struct {
	next   func() (K, V, bool)
	close  func() error
	done   bool
	closed bool
}

func (c *funcCursor[K, V]) Next() (K, V, bool) {
	if c.done {
		var k K
		var v V
		return k, v, false
	}
	k, v, ok := c.next()
	if !ok {
		c.done = true
	}
	return k, v, ok
}

func (c *funcCursor[K, V]) Close() error {
	c.done = true
	if c.closed || c.close == nil {
		c.closed = true
		return nil
	}
	c.closed = true
	return c.close()
}

// derived builds a cursor whose Close also closes upstream.
func derived[K comparable, V any, UK comparable, UV any](upstream Cursor[UK, UV], next func() (K, V, bool)) Cursor[K, V] {
	return &funcCursor[K, V]{next: next, close: upstream.Close}
}

func exhausted[K comparable, V any]() Cursor[K, V] {
	return &funcCursor[K, V]{done: true}
}

// ─────────────────────────────────────────────────────────────────────────────
// Lazy producers
// ─────────────────────────────────────────────────────────────────────────────

// Lazy is a single-pass sequence whose pairs are computed on demand.
//
// Nothing is pulled from upstream until the cursor returned by Iter is
// advanced. The first Iter call hands out the only cursor; later calls log a
// warning and return an exhausted cursor.
type Lazy[K comparable, V any] struct {
	produce  func() Cursor[K, V]
	consumed bool
}

// Defer wraps a cursor factory as a lazy producer. produce is invoked at most
// once, on the first call to Iter.
func Defer[K comparable, V any](produce func() Cursor[K, V]) *Lazy[K, V] {
	return &Lazy[K, V]{produce: produce}
}

// Iter returns the producer's cursor.
func (l *Lazy[K, V]) Iter() Cursor[K, V] {
	if l.consumed {
		logger().Warn().Msg("single-pass sequence traversed more than once; yielding nothing")
		return exhausted[K, V]()
	}
	l.consumed = true
	c := l.produce()
	l.produce = nil
	return c
}

// Consumed reports whether the producer has already handed out its cursor.
func (l *Lazy[K, V]) Consumed() bool { return l.consumed }

// FromFunc creates a lazy generator from next. next is called once per pair
// and returns ok=false to end the sequence; it may never do so, in which case
// only short-circuiting consumers (Slice with a length, In) terminate.
func FromFunc[K comparable, V any](next func() (K, V, bool)) *Lazy[K, V] {
	return Defer(func() Cursor[K, V] {
		return &funcCursor[K, V]{next: next}
	})
}

// FromSeq2 adapts a push iterator to a lazy, pull-based sequence.
func FromSeq2[K comparable, V any](seq iter.Seq2[K, V]) *Lazy[K, V] {
	return Defer(func() Cursor[K, V] {
		next, stop := iter.Pull2(seq)
		return &funcCursor[K, V]{
			next: next,
			close: func() error {
				stop()
				return nil
			},
		}
	})
}

// All returns a range-over-func iterator over s. The underlying cursor is
// closed when the loop finishes or breaks.
//
//	for k, v := range collections.All(seq) { ... }
func All[K comparable, V any](s Sequence[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c := s.Iter()
		defer c.Close()
		for {
			k, v, ok := c.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}

// Erase adapts a typed sequence to Sequence[any, any]. A materialized
// collection is converted eagerly (it is already in memory); anything else
// stays lazy.
func Erase[K comparable, V any](s Sequence[K, V]) Sequence[any, any] {
	if erased, ok := any(s).(Sequence[any, any]); ok {
		return erased
	}
	if c, ok := s.(*Collection[K, V]); ok {
		out := newCollection[any, any](c.Count())
		for i, k := range c.keys {
			out.Put(k, c.vals[i])
		}
		return out
	}
	return Defer(func() Cursor[any, any] {
		up := s.Iter()
		return derived(up, func() (any, any, bool) {
			k, v, ok := up.Next()
			if !ok {
				return nil, nil, false
			}
			return k, v, true
		})
	})
}

// Erased returns c as a Sequence[any, any]. See [Erase].
func (c *Collection[K, V]) Erased() Sequence[any, any] { return Erase[K, V](c) }

// Erased returns l as a lazy Sequence[any, any]. See [Erase].
func (l *Lazy[K, V]) Erased() Sequence[any, any] { return Erase[K, V](l) }

// ─────────────────────────────────────────────────────────────────────────────
// Materialization
// ─────────────────────────────────────────────────────────────────────────────

// Materialize converts s into a concrete, replayable collection.
//
// A *Collection is returned unchanged. Anything else is traversed exactly once;
// when a key repeats, the later value overwrites the earlier one in place.
func Materialize[K comparable, V any](s Sequence[K, V]) *Collection[K, V] {
	if c, ok := s.(*Collection[K, V]); ok {
		return c
	}
	out := newCollection[K, V](0)
	cur := s.Iter()
	defer cur.Close()
	for {
		k, v, ok := cur.Next()
		if !ok {
			return out
		}
		out.Put(k, v)
	}
}

// AsArray is an alias for [Materialize].
func AsArray[K comparable, V any](s Sequence[K, V]) *Collection[K, V] {
	return Materialize(s)
}
