package chain

import (
	"fmt"
	"reflect"

	"github.com/ghetzel/go-stockutil/stringutil"

	"github.com/hasbyte1/go-lazy-collections/collections"
)

// Seq is the sequence type every dynamic operator consumes and produces.
type Seq = collections.Sequence[any, any]

// builtins maps the lower-cased operator names to the dynamic adapters over
// the typed operators in package collections.
var builtins = map[string]operator{
	"map":     {fn: opMap},
	"filter":  {fn: opFilter},
	"keys":    {fn: opKeys},
	"values":  {fn: opValues},
	"chunk":   {fn: opChunk},
	"slice":   {fn: opSlice},
	"reverse": {fn: opReverse},
	"sort":    {fn: opSort},
	"ksort":   {fn: opKSort},
	"unique":  {fn: opUnique},
	"shuffle": {fn: opShuffle},
	"tap":     {fn: opTap},
	"reduce":  {fn: opReduce, terminal: true},
	"min":     {fn: opMin, terminal: true},
	"max":     {fn: opMax, terminal: true},
	"sum":     {fn: opSum, terminal: true},
	"implode": {fn: opImplode, terminal: true},
	"in":      {fn: opIn, terminal: true},
	"count":   {fn: opCount, terminal: true},
	"asarray": {fn: opAsArray, terminal: true},
}

// ─────────────────────────────────────────────────────────────────────────────
// Lazy
// ─────────────────────────────────────────────────────────────────────────────

// map(fn)
func opMap(_ *Config, in Seq, args ...any) (any, error) {
	fn, err := callbackArg("map", args, 0)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: map needs a callback", ErrInvalidArgument)
	}
	return collections.Map(in, func(v, k any) any { return fn(v, k) }), nil
}

// filter([fn])
func opFilter(_ *Config, in Seq, args ...any) (any, error) {
	fn, err := callbackArg("filter", args, 0)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return collections.Filter(in, nil), nil
	}
	return collections.Filter(in, func(v, k any) bool { return collections.Truthy(fn(v, k)) }), nil
}

func opKeys(_ *Config, in Seq, _ ...any) (any, error) {
	return collections.Keys(in).Erased(), nil
}

func opValues(_ *Config, in Seq, _ ...any) (any, error) {
	return collections.Values(in).Erased(), nil
}

// chunk(size, [preserveKeys])
func opChunk(_ *Config, in Seq, args ...any) (any, error) {
	size, err := intArg("chunk", args, 0)
	if err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", collections.ErrInvalidChunkSize, size)
	}
	preserve, err := boolArg("chunk", args, 1, false)
	if err != nil {
		return nil, err
	}
	if preserve {
		return collections.ChunkPreserve(in, size).Erased(), nil
	}
	return collections.Chunk(in, size).Erased(), nil
}

// slice(start, [length], [preserveKeys])
func opSlice(_ *Config, in Seq, args ...any) (any, error) {
	start, err := intArg("slice", args, 0)
	if err != nil {
		return nil, err
	}
	length, hasLength, err := optIntArg("slice", args, 1)
	if err != nil {
		return nil, err
	}
	preserve, err := boolArg("slice", args, 2, false)
	if err != nil {
		return nil, err
	}
	var bound []int
	if hasLength {
		bound = []int{length}
	}
	if preserve {
		return collections.SlicePreserve(in, start, bound...), nil
	}
	return collections.Erase(collections.Slice(in, start, bound...)), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Eager
// ─────────────────────────────────────────────────────────────────────────────

// reverse([preserveKeys])
func opReverse(_ *Config, in Seq, args ...any) (any, error) {
	preserve, err := boolArg("reverse", args, 0, false)
	if err != nil {
		return nil, err
	}
	if preserve {
		return collections.ReversePreserve(in), nil
	}
	return collections.Reverse(in).Erased(), nil
}

// sort([cmp])
func opSort(_ *Config, in Seq, args ...any) (any, error) {
	cmp, err := comparatorArg("sort", args, 0)
	if err != nil {
		return nil, err
	}
	return collections.Sort(in, cmp).Erased(), nil
}

// ksort([cmp])
func opKSort(_ *Config, in Seq, args ...any) (any, error) {
	cmp, err := comparatorArg("ksort", args, 0)
	if err != nil {
		return nil, err
	}
	return collections.KSort(in, cmp), nil
}

// unique([keyFn]) compares the string forms of the values, or of keyFn's
// results when given.
func opUnique(_ *Config, in Seq, args ...any) (any, error) {
	fn, err := callbackArg("unique", args, 0)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return collections.UniqueBy(in, nil), nil
	}
	return collections.UniqueBy(in, func(v any) any { return collections.Stringify(fn(v, nil)) }), nil
}

// shuffle([src])
func opShuffle(cfg *Config, in Seq, args ...any) (any, error) {
	src, err := shufflerArg("shuffle", args, 0, cfg.shuffler())
	if err != nil {
		return nil, err
	}
	return collections.Shuffle(in, src).Erased(), nil
}

// tap(fn)
func opTap(_ *Config, in Seq, args ...any) (any, error) {
	fn, err := tapArg("tap", args, 0)
	if err != nil {
		return nil, err
	}
	return collections.Tap(in, fn), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Terminal
// ─────────────────────────────────────────────────────────────────────────────

// reduce(fn, initial)
func opReduce(_ *Config, in Seq, args ...any) (any, error) {
	fn, err := reducerArg("reduce", args, 0)
	if err != nil {
		return nil, err
	}
	initial, _ := arg(args, 1)
	return collections.Reduce(in, fn, initial), nil
}

// min([cmp]); nil for an empty sequence.
func opMin(_ *Config, in Seq, args ...any) (any, error) {
	cmp, err := comparatorArg("min", args, 0)
	if err != nil {
		return nil, err
	}
	v, _ := collections.Min(in, cmp)
	return v, nil
}

// max([cmp]); nil for an empty sequence.
func opMax(_ *Config, in Seq, args ...any) (any, error) {
	cmp, err := comparatorArg("max", args, 0)
	if err != nil {
		return nil, err
	}
	v, _ := collections.Max(in, cmp)
	return v, nil
}

// sum() returns an int64 while every value is integral and switches to
// float64 at the first fractional value. Numeric strings are converted;
// nil counts as zero.
func opSum(_ *Config, in Seq, _ ...any) (any, error) {
	var (
		total   int64
		ftotal  float64
		isFloat bool
	)
	cur := in.Iter()
	defer cur.Close()
	for {
		k, v, ok := cur.Next()
		if !ok {
			break
		}
		n, err := numeric(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %v: %v", ErrNotNumeric, k, err)
		}
		switch n := n.(type) {
		case int64:
			if isFloat {
				ftotal += float64(n)
			} else {
				total += n
			}
		case float64:
			if !isFloat {
				ftotal = float64(total)
				isFloat = true
			}
			ftotal += n
		}
	}
	if isFloat {
		return ftotal, nil
	}
	return total, nil
}

// numeric returns v as an int64 or float64.
func numeric(v any) (any, error) {
	if v == nil {
		return int64(0), nil
	}
	if s, ok := v.(string); ok {
		v = stringutil.Autotype(s)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return nil, fmt.Errorf("%#v", v)
}

// implode([glue], [fn])
func opImplode(_ *Config, in Seq, args ...any) (any, error) {
	glue, err := stringArg("implode", args, 0, "")
	if err != nil {
		return nil, err
	}
	fn, err := stringerArg("implode", args, 1)
	if err != nil {
		return nil, err
	}
	return collections.Implode(in, glue, fn), nil
}

// in(needle, [strict])
func opIn(cfg *Config, in Seq, args ...any) (any, error) {
	needle, ok := arg(args, 0)
	if !ok {
		return nil, fmt.Errorf("%w: in needs a needle", ErrInvalidArgument)
	}
	strict, err := boolArg("in", args, 1, cfg.Strict)
	if err != nil {
		return nil, err
	}
	eq := collections.LooseEqual
	if strict {
		eq = collections.StrictEqual
	}
	return collections.InFunc(in, needle, eq), nil
}

func opCount(_ *Config, in Seq, _ ...any) (any, error) {
	return collections.Count(in), nil
}

func opAsArray(_ *Config, in Seq, _ ...any) (any, error) {
	return collections.Materialize(in), nil
}
