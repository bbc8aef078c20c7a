package collections

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/davecgh/go-spew/spew"
)

// Collection is a materialized, ordered key→value sequence.
//
// Pairs keep the order in which their keys were first inserted. Assigning to
// an existing key replaces the value without moving it, the same way an
// associative array behaves. A Collection can be traversed any number of
// times and is the result type of every eager operator.
//
// # Creating a collection
//
//	c := collections.New(1, 2, 3)                       // keys 0, 1, 2
//	c := collections.From([]string{"a", "b"})           // keys 0, 1
//	c := collections.FromMap(map[string]int{"b": 2, "a": 1}) // keys "a", "b"
//	c := collections.Empty[string, int]()
//
// Operators accept any [Sequence]; a Collection is simply the replayable one.
type Collection[K comparable, V any] struct {
	keys  []K
	vals  []V
	index map[K]int
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

func newCollection[K comparable, V any](capacity int) *Collection[K, V] {
	return &Collection[K, V]{
		keys:  make([]K, 0, capacity),
		vals:  make([]V, 0, capacity),
		index: make(map[K]int, capacity),
	}
}

// New creates a positional collection from a variadic list of items.
func New[V any](items ...V) *Collection[int, V] {
	return From(items)
}

// From creates a positional collection from a slice (the slice is copied).
func From[V any](items []V) *Collection[int, V] {
	c := newCollection[int, V](len(items))
	for i, item := range items {
		c.Put(i, item)
	}
	return c
}

// FromMap creates a collection from a map. Go maps are unordered, so keys are
// inserted in ascending order to keep traversal reproducible.
func FromMap[K cmp.Ordered, V any](m map[K]V) *Collection[K, V] {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	c := newCollection[K, V](len(keys))
	for _, k := range keys {
		c.Put(k, m[k])
	}
	return c
}

// Empty creates an empty collection.
func Empty[K comparable, V any]() *Collection[K, V] {
	return newCollection[K, V](0)
}

// ─────────────────────────────────────────────────────────────────────────────
// Sequence
// ─────────────────────────────────────────────────────────────────────────────

// Iter returns a fresh cursor over the pairs in order. Collections are
// replayable: every call starts from the first pair.
func (c *Collection[K, V]) Iter() Cursor[K, V] {
	i := 0
	return &funcCursor[K, V]{next: func() (K, V, bool) {
		if i >= len(c.keys) {
			var k K
			var v V
			return k, v, false
		}
		k, v := c.keys[i], c.vals[i]
		i++
		return k, v, true
	}}
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutation
// ─────────────────────────────────────────────────────────────────────────────

// Put assigns value to key. A new key is appended; an existing key keeps its
// position and takes the new value.
func (c *Collection[K, V]) Put(key K, value V) {
	if i, ok := c.index[key]; ok {
		c.vals[i] = value
		return
	}
	c.index[key] = len(c.keys)
	c.keys = append(c.keys, key)
	c.vals = append(c.vals, value)
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// Get returns the value stored under key together with a presence flag.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	i, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.vals[i], true
}

// Has reports whether key is present.
func (c *Collection[K, V]) Has(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Lookup is Get with an untyped key. A key of the wrong type is absent.
func (c *Collection[K, V]) Lookup(key any) (any, bool) {
	k, ok := key.(K)
	if !ok {
		return nil, false
	}
	v, ok := c.Get(k)
	if !ok {
		return nil, false
	}
	return v, true
}

// Count returns the number of pairs.
func (c *Collection[K, V]) Count() int { return len(c.keys) }

// IsEmpty reports whether the collection holds no pairs.
func (c *Collection[K, V]) IsEmpty() bool { return len(c.keys) == 0 }

// Keys returns a copy of the keys in order.
func (c *Collection[K, V]) Keys() []K { return slices.Clone(c.keys) }

// Values returns a copy of the values in order.
func (c *Collection[K, V]) Values() []V { return slices.Clone(c.vals) }

// Pairs returns every key/value pair in order.
func (c *Collection[K, V]) Pairs() []Pair[K, V] {
	out := make([]Pair[K, V], len(c.keys))
	for i, k := range c.keys {
		out[i] = Pair[K, V]{Key: k, Value: c.vals[i]}
	}
	return out
}

// ToMap copies the pairs into a Go map. Order is lost.
func (c *Collection[K, V]) ToMap() map[K]V {
	out := make(map[K]V, len(c.keys))
	for i, k := range c.keys {
		out[k] = c.vals[i]
	}
	return out
}

// IsList reports whether the keys are exactly 0, 1, …, Count()-1 in order.
func (c *Collection[K, V]) IsList() bool {
	for i, k := range c.keys {
		n, ok := any(k).(int)
		if !ok || n != i {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Encoding & debugging
// ─────────────────────────────────────────────────────────────────────────────

// MarshalJSON encodes a list-shaped collection as a JSON array and anything
// else as a JSON object whose members follow the collection order.
func (c *Collection[K, V]) MarshalJSON() ([]byte, error) {
	if c.IsList() {
		return json.Marshal(c.vals)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToJSON serialises the collection, see [Collection.MarshalJSON].
func (c *Collection[K, V]) ToJSON() ([]byte, error) {
	return c.MarshalJSON()
}

// String returns a JSON representation of the collection.
// It implements [fmt.Stringer].
func (c *Collection[K, V]) String() string {
	b, err := c.ToJSON()
	if err != nil {
		return fmt.Sprintf("%v", c.Pairs())
	}
	return string(b)
}

// Dump writes a detailed, type-annotated rendering of the pairs to w and
// returns c for chaining.
func (c *Collection[K, V]) Dump(w io.Writer) *Collection[K, V] {
	spew.Fdump(w, c.Pairs())
	return c
}
