package chain

import (
	"fmt"
	"reflect"

	"github.com/hasbyte1/go-lazy-collections/collections"
)

// Applier is anything that maps a value to another value. An *access.Path
// is the usual implementation, which lets a recorded path stand in for a
// callback:
//
//	chain.Wrap(users).Map(access.New().Property("Name"))
type Applier interface {
	Apply(subject any) any
}

// ─────────────────────────────────────────────────────────────────────────────
// Positional argument helpers
// ─────────────────────────────────────────────────────────────────────────────

func arg(args []any, i int) (any, bool) {
	if i >= len(args) {
		return nil, false
	}
	return args[i], true
}

func invalid(op string, i int, want string, got any) error {
	return fmt.Errorf("%w: %s argument %d must be %s, got %T", ErrInvalidArgument, op, i+1, want, got)
}

func intArg(op string, args []any, i int) (int, error) {
	v, ok := arg(args, i)
	if !ok {
		return 0, fmt.Errorf("%w: %s needs argument %d", ErrInvalidArgument, op, i+1)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), nil
	}
	return 0, invalid(op, i, "an integer", v)
}

// optIntArg is intArg for an optional argument; nil counts as absent.
func optIntArg(op string, args []any, i int) (n int, present bool, err error) {
	if v, ok := arg(args, i); !ok || v == nil {
		return 0, false, nil
	}
	n, err = intArg(op, args, i)
	return n, err == nil, err
}

func boolArg(op string, args []any, i int, def bool) (bool, error) {
	v, ok := arg(args, i)
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalid(op, i, "a bool", v)
	}
	return b, nil
}

func stringArg(op string, args []any, i int, def string) (string, error) {
	v, ok := arg(args, i)
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(op, i, "a string", v)
	}
	return s, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Callback adapters
// ─────────────────────────────────────────────────────────────────────────────

// callbackArg accepts func(v, k any) any, func(v any) any, their bool
// returning forms, or an [Applier]. A missing or nil argument yields nil.
func callbackArg(op string, args []any, i int) (func(v, k any) any, error) {
	v, ok := arg(args, i)
	if !ok || v == nil {
		return nil, nil
	}
	switch fn := v.(type) {
	case func(v, k any) any:
		return fn, nil
	case func(v any) any:
		return func(v, _ any) any { return fn(v) }, nil
	case func(v, k any) bool:
		return func(v, k any) any { return fn(v, k) }, nil
	case func(v any) bool:
		return func(v, _ any) any { return fn(v) }, nil
	case Applier:
		return func(v, _ any) any { return fn.Apply(v) }, nil
	}
	return nil, invalid(op, i, "a callback", v)
}

// comparatorArg accepts func(a, b any) int, a less-than func(a, b any) bool,
// or an [Applier] whose results are compared with [collections.Natural].
// A missing or nil argument yields [collections.Natural].
func comparatorArg(op string, args []any, i int) (func(a, b any) int, error) {
	v, ok := arg(args, i)
	if !ok || v == nil {
		return collections.Natural, nil
	}
	switch fn := v.(type) {
	case func(a, b any) int:
		return fn, nil
	case func(a, b any) bool:
		return func(a, b any) int {
			switch {
			case fn(a, b):
				return -1
			case fn(b, a):
				return 1
			}
			return 0
		}, nil
	case Applier:
		return func(a, b any) int { return collections.Natural(fn.Apply(a), fn.Apply(b)) }, nil
	}
	return nil, invalid(op, i, "a comparator", v)
}

func reducerArg(op string, args []any, i int) (func(acc, v any) any, error) {
	v, ok := arg(args, i)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs argument %d", ErrInvalidArgument, op, i+1)
	}
	fn, ok := v.(func(acc, v any) any)
	if !ok {
		return nil, invalid(op, i, "a func(acc, v any) any", v)
	}
	return fn, nil
}

func stringerArg(op string, args []any, i int) (func(any) string, error) {
	v, ok := arg(args, i)
	if !ok || v == nil {
		return nil, nil
	}
	switch fn := v.(type) {
	case func(any) string:
		return fn, nil
	case Applier:
		return func(v any) string { return collections.Stringify(fn.Apply(v)) }, nil
	}
	return nil, invalid(op, i, "a func(any) string", v)
}

func tapArg(op string, args []any, i int) (func(*collections.Collection[any, any]), error) {
	v, ok := arg(args, i)
	if !ok {
		return nil, fmt.Errorf("%w: %s needs argument %d", ErrInvalidArgument, op, i+1)
	}
	switch fn := v.(type) {
	case func(*collections.Collection[any, any]):
		return fn, nil
	case func(any):
		return func(c *collections.Collection[any, any]) { fn(c) }, nil
	}
	return nil, invalid(op, i, "a func(*collections.Collection[any, any])", v)
}

func shufflerArg(op string, args []any, i int, def collections.Shuffler) (collections.Shuffler, error) {
	v, ok := arg(args, i)
	if !ok || v == nil {
		return def, nil
	}
	switch src := v.(type) {
	case collections.Shuffler:
		return src, nil
	case func(n int, swap func(i, j int)):
		return collections.ShufflerFunc(src), nil
	}
	return nil, invalid(op, i, "a collections.Shuffler", v)
}
