package collections

// Cursor is a single-pass, pull-based traversal over key/value pairs.
//
// Next returns the next pair; ok is false once the sequence is exhausted and
// stays false on every later call. Close releases whatever the producer chain
// holds (upstream cursors, pulled iterators). It is safe to call Close more
// than once, and consumers that stop early must still call it.
//
// Portability note: this maps to the Iterator protocol in Python
// (__next__ raising StopIteration) or Iterator<T> in Java/TypeScript.
type Cursor[K comparable, V any] interface {
	Next() (key K, value V, ok bool)
	Close() error
}

// Sequence is the capability every operator consumes: something that can be
// traversed, yielding key/value pairs in a fixed, reproducible order.
//
// A [*Collection] hands out a fresh cursor on every call to Iter. A [*Lazy]
// producer hands out exactly one; traverse it once, or [Materialize] it first.
type Sequence[K comparable, V any] interface {
	Iter() Cursor[K, V]
}

// Lookuper is implemented by containers that support keyed lookup with an
// untyped key. The access package uses it for index steps.
type Lookuper interface {
	Lookup(key any) (any, bool)
}
