package collections

import (
	"cmp"
	"fmt"
	"reflect"

	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/ghetzel/go-stockutil/typeutil"
)

// Number is the constraint for values Sum and Range can do arithmetic on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// ─────────────────────────────────────────────────────────────────────────────
// Ordering
// ─────────────────────────────────────────────────────────────────────────────

// Natural is the default comparator. It returns a negative number when a
// sorts before b, zero when they are equal and a positive number otherwise.
//
// Numbers of any width compare numerically with each other, strings
// lexicographically, false before true, and nil before everything. Any other
// combination panics with [ErrNotComparable].
func Natural(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case isInt(ra) && isInt(rb):
		return cmp.Compare(ra.Int(), rb.Int())
	case isUint(ra) && isUint(rb):
		return cmp.Compare(ra.Uint(), rb.Uint())
	case isNumeric(ra) && isNumeric(rb):
		return cmp.Compare(toFloat(ra), toFloat(rb))
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return cmp.Compare(ra.String(), rb.String())
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		x, y := ra.Bool(), rb.Bool()
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
	panic(fmt.Errorf("%w: %T and %T", ErrNotComparable, a, b))
}

// Swap returns fn with its arguments exchanged, turning an ascending
// comparator into a descending one.
func Swap[T any](fn func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return fn(b, a) }
}

func naturalOf[T any]() func(a, b T) int {
	return func(a, b T) int { return Natural(a, b) }
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumeric(v reflect.Value) bool {
	return isInt(v) || isUint(v) || v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}

// ─────────────────────────────────────────────────────────────────────────────
// Truthiness, equality, stringification
// ─────────────────────────────────────────────────────────────────────────────

// Truthy is the default Filter predicate. nil, zero values, "" and "0",
// and empty slices, maps and collections are false; everything else is true.
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case interface{ Count() int }:
		return t.Count() > 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return !typeutil.IsZero(v)
}

// StrictEqual reports whether a and b have the same dynamic type and value.
// Values of uncomparable types (slices, maps) are compared deeply.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// LooseEqual reports whether a and b are equal after relaxed type coercion,
// so 2, int64(2), 2.0 and "2" are all equal to each other.
func LooseEqual(a, b any) bool {
	if StrictEqual(a, b) {
		return true
	}
	eq, err := stringutil.RelaxedEqual(a, b)
	return err == nil && eq
}

// Stringify is the default string conversion used by Implode.
func Stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, err := stringutil.ToString(v); err == nil {
		return s
	}
	return fmt.Sprintf("%v", v)
}
