package chain

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/ghetzel/go-stockutil/sliceutil"
	"github.com/ghetzel/go-stockutil/typeutil"

	"github.com/hasbyte1/go-lazy-collections/collections"
)

// Wrapper holds one sequence and threads it through operators invoked by
// name. Every chainable operator replaces the held sequence with its result;
// a terminal operator returns its result and leaves the wrapper as it was.
//
// The fluent methods record the first error and turn every later call into a
// no-op, so a chain is checked once at the end:
//
//	w := chain.Wrap([]int{3, 1, 2}).Sort().Map(double)
//	out, err := w.AsArray()
//
// A Wrapper is itself a [collections.Sequence], so it can be passed to any
// typed operator. It is not safe for concurrent use.
type Wrapper struct {
	cfg Config
	seq Seq
	err error
}

// erasable is implemented by every typed collection and lazy producer.
type erasable interface {
	Erased() collections.Sequence[any, any]
}

// ─────────────────────────────────────────────────────────────────────────────
// Constructors
// ─────────────────────────────────────────────────────────────────────────────

// Wrap creates a wrapper around v with [DefaultConfig]. See [New].
func Wrap(v any) *Wrapper {
	return New(DefaultConfig(), v)
}

// New creates a wrapper around v. Nothing is traversed.
//
// v may be nil (an empty sequence), another *Wrapper, any sequence or typed
// collection from package collections, an iter.Seq2[any, any] or
// iter.Seq[any], or any slice, array or map. Map entries are held in
// ascending key order. Any other value leaves the wrapper in an error state
// wrapping [ErrInvalidArgument].
func New(cfg Config, v any) *Wrapper {
	seq, err := toSequence(v)
	return &Wrapper{cfg: cfg, seq: seq, err: err}
}

// Of wraps a typed sequence with [DefaultConfig].
func Of[K comparable, V any](s collections.Sequence[K, V]) *Wrapper {
	return &Wrapper{cfg: DefaultConfig(), seq: collections.Erase(s)}
}

func toSequence(v any) (Seq, error) {
	switch s := v.(type) {
	case nil:
		return collections.Empty[any, any](), nil
	case *Wrapper:
		return s.seq, s.err
	case Seq:
		return s, nil
	case erasable:
		return s.Erased(), nil
	case []any:
		return collections.From(s).Erased(), nil
	case map[string]any:
		return collections.FromMap(s).Erased(), nil
	case iter.Seq2[any, any]:
		return collections.FromSeq2(s), nil
	case func(yield func(any, any) bool):
		return collections.FromSeq2(s), nil
	case iter.Seq[any]:
		return fromSeq(s), nil
	case func(yield func(any) bool):
		return fromSeq(s), nil
	}
	if typeutil.IsArray(v) {
		return collections.From(sliceutil.Sliceify(v)).Erased(), nil
	}
	if typeutil.IsMap(v) {
		return fromMap(reflect.ValueOf(v)), nil
	}
	return nil, fmt.Errorf("%w: cannot wrap %T", ErrInvalidArgument, v)
}

func fromSeq(seq iter.Seq[any]) Seq {
	return collections.FromSeq2(func(yield func(any, any) bool) {
		i := 0
		for v := range seq {
			if !yield(i, v) {
				return
			}
			i++
		}
	})
}

func fromMap(rv reflect.Value) Seq {
	keys := rv.MapKeys()
	slices.SortStableFunc(keys, func(a, b reflect.Value) int {
		return compareKeys(a.Interface(), b.Interface())
	})
	out := collections.Empty[any, any]()
	for _, k := range keys {
		out.Put(k.Interface(), rv.MapIndex(k).Interface())
	}
	return out
}

// compareKeys orders map keys naturally, falling back to their printed form
// for key types without a natural order.
func compareKeys(a, b any) (n int) {
	defer func() {
		if recover() != nil {
			n = strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
		}
	}()
	return collections.Natural(a, b)
}

// ─────────────────────────────────────────────────────────────────────────────
// Dispatch
// ─────────────────────────────────────────────────────────────────────────────

// Call invokes the operator registered under name (case-insensitive) with
// the held sequence followed by args.
//
// When a chainable operator returns a sequence, the wrapper holds it from now
// on and Call returns the wrapper itself. Terminal results, and anything a
// chainable operator returns that is not a sequence, are returned directly.
// An unknown name fails with [ErrUnsupportedOperation].
func (w *Wrapper) Call(name string, args ...any) (any, error) {
	if w.err != nil {
		return nil, w.err
	}
	op, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, name)
	}
	w.cfg.logger().Debug().
		Str("op", strings.ToLower(name)).
		Int("args", len(args)).
		Bool("terminal", op.terminal).
		Msg("dispatch")

	out, err := op.fn(&w.cfg, w.seq, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", strings.ToLower(name), err)
	}
	if op.terminal {
		return out, nil
	}
	seq, ok := out.(Seq)
	if !ok {
		return out, nil
	}
	w.seq = seq
	return w, nil
}

// Err returns the first error recorded by a fluent call, if any.
func (w *Wrapper) Err() error { return w.err }

// Sequence returns the held sequence.
func (w *Wrapper) Sequence() Seq { return w.seq }

// Iter returns a cursor over the held sequence, or an exhausted one when the
// wrapper is in an error state.
func (w *Wrapper) Iter() collections.Cursor[any, any] {
	if w.err != nil {
		return collections.Empty[any, any]().Iter()
	}
	return w.seq.Iter()
}

func (w *Wrapper) then(name string, args ...any) *Wrapper {
	if w.err != nil {
		return w
	}
	if _, err := w.Call(name, args...); err != nil {
		w.err = err
	}
	return w
}

// ─────────────────────────────────────────────────────────────────────────────
// Chainable operators
// ─────────────────────────────────────────────────────────────────────────────

// Map replaces every value with fn(v, k). fn is a func(v, k any) any, a
// func(v any) any, or an [Applier].
func (w *Wrapper) Map(fn any) *Wrapper { return w.then("map", fn) }

// Filter keeps the pairs for which fn returns a truthy value. Without fn it
// keeps the truthy values.
func (w *Wrapper) Filter(fn ...any) *Wrapper { return w.then("filter", fn...) }

// Keys replaces the held sequence with its keys, re-indexed from 0.
func (w *Wrapper) Keys() *Wrapper { return w.then("keys") }

// Values drops the keys and re-indexes the values from 0.
func (w *Wrapper) Values() *Wrapper { return w.then("values") }

// Chunk groups the values into collections of at most size elements.
func (w *Wrapper) Chunk(size int) *Wrapper { return w.then("chunk", size) }

// ChunkPreserve is Chunk keeping the original keys inside each chunk.
func (w *Wrapper) ChunkPreserve(size int) *Wrapper { return w.then("chunk", size, true) }

// Slice keeps the values at positions [start, start+length), re-indexed.
func (w *Wrapper) Slice(start int, length ...int) *Wrapper {
	return w.then("slice", start, optional(length), false)
}

// SlicePreserve is Slice keeping the original keys.
func (w *Wrapper) SlicePreserve(start int, length ...int) *Wrapper {
	return w.then("slice", start, optional(length), true)
}

// Reverse reverses the values and re-indexes them.
func (w *Wrapper) Reverse() *Wrapper { return w.then("reverse") }

// ReversePreserve reverses the pairs, keeping their keys.
func (w *Wrapper) ReversePreserve() *Wrapper { return w.then("reverse", true) }

// Sort orders the values, by cmp if given, and re-indexes them.
func (w *Wrapper) Sort(cmp ...any) *Wrapper { return w.then("sort", cmp...) }

// KSort orders the pairs by key, by cmp if given.
func (w *Wrapper) KSort(cmp ...any) *Wrapper { return w.then("ksort", cmp...) }

// Unique drops every pair whose value, or keyFn result when given, has
// already been seen.
func (w *Wrapper) Unique(keyFn ...any) *Wrapper { return w.then("unique", keyFn...) }

// Shuffle permutes the values with src, or the configured shuffler.
func (w *Wrapper) Shuffle(src ...collections.Shuffler) *Wrapper {
	if len(src) > 0 {
		return w.then("shuffle", src[0])
	}
	return w.then("shuffle")
}

// Tap materializes the held sequence and passes it to fn.
func (w *Wrapper) Tap(fn func(*collections.Collection[any, any])) *Wrapper {
	return w.then("tap", fn)
}

func optional(n []int) any {
	if len(n) == 0 {
		return nil
	}
	return n[0]
}

// ─────────────────────────────────────────────────────────────────────────────
// Terminal operators
// ─────────────────────────────────────────────────────────────────────────────

// AsArray materializes the held sequence.
func (w *Wrapper) AsArray() (*collections.Collection[any, any], error) {
	return result[*collections.Collection[any, any]](w, "asArray")
}

// Reduce folds the values left to right starting from initial.
func (w *Wrapper) Reduce(fn func(acc, v any) any, initial any) (any, error) {
	return w.Call("reduce", fn, initial)
}

// Min returns the smallest value, or nil when there is none.
func (w *Wrapper) Min(cmp ...any) (any, error) { return w.Call("min", cmp...) }

// Max returns the largest value, or nil when there is none.
func (w *Wrapper) Max(cmp ...any) (any, error) { return w.Call("max", cmp...) }

// Sum returns the sum of the values as an int64, or a float64 once any value
// is fractional.
func (w *Wrapper) Sum() (any, error) { return w.Call("sum") }

// Implode joins the string forms of the values with glue.
func (w *Wrapper) Implode(glue string, fn ...func(any) string) (string, error) {
	args := []any{glue}
	if len(fn) > 0 {
		args = append(args, fn[0])
	}
	return result[string](w, "implode", args...)
}

// In reports whether needle is among the values. Equality is loose unless
// strict is passed or the config is strict.
func (w *Wrapper) In(needle any, strict ...bool) (bool, error) {
	args := []any{needle}
	if len(strict) > 0 {
		args = append(args, strict[0])
	}
	return result[bool](w, "in", args...)
}

// Count returns the number of pairs.
func (w *Wrapper) Count() (int, error) {
	return result[int](w, "count")
}

// result calls name and asserts its result to T. A replaced operator that
// returns something else fails with [ErrUnexpectedResult].
func result[T any](w *Wrapper, name string, args ...any) (T, error) {
	var zero T
	out, err := w.Call(name, args...)
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s returned %T", ErrUnexpectedResult, strings.ToLower(name), out)
	}
	return v, nil
}
