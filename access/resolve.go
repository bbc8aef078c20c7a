package access

import (
	"fmt"
	"reflect"

	"github.com/hasbyte1/go-lazy-collections/collections"
)

// PropertyReader is implemented by subjects that expose named members
// themselves. It takes precedence over reflection.
type PropertyReader interface {
	Property(name string) (value any, ok bool)
}

var errorType = reflect.TypeFor[error]()

// ─────────────────────────────────────────────────────────────────────────────
// Property
// ─────────────────────────────────────────────────────────────────────────────

func property(subject any, name string) any {
	switch s := subject.(type) {
	case PropertyReader:
		if v, ok := s.Property(name); ok {
			return v
		}
		return nil
	case collections.Lookuper:
		v, _ := s.Lookup(name)
		return v
	}
	v, ok := deref(reflect.ValueOf(subject))
	if !ok {
		return nil
	}
	switch v.Kind() {
	case reflect.Struct:
		f, ok := v.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil || !fv.CanInterface() {
			return nil
		}
		return fv.Interface()
	case reflect.Map:
		if k := v.Type().Key().Kind(); k != reflect.String && k != reflect.Interface {
			return nil
		}
		return mapIndex(v, name)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Index
// ─────────────────────────────────────────────────────────────────────────────

func index(subject any, key any) any {
	if l, ok := subject.(collections.Lookuper); ok {
		v, _ := l.Lookup(key)
		return v
	}
	v, ok := deref(reflect.ValueOf(subject))
	if !ok {
		return nil
	}
	switch v.Kind() {
	case reflect.Map:
		return mapIndex(v, key)
	case reflect.Slice, reflect.Array:
		i, ok := position(key, v.Len())
		if !ok {
			return nil
		}
		return v.Index(i).Interface()
	case reflect.String:
		i, ok := position(key, v.Len())
		if !ok {
			return nil
		}
		return v.String()[i : i+1]
	}
	return nil
}

// mapIndex looks key up in m. An integer key on a string-keyed map looks up
// its decimal form, so "items.0" reaches map[string]any{"0": ...}.
func mapIndex(m reflect.Value, key any) any {
	kt := m.Type().Key()
	k, ok := convert(key, kt)
	if !ok {
		if kt.Kind() != reflect.String || !isInteger(key) {
			return nil
		}
		k = reflect.ValueOf(fmt.Sprint(key)).Convert(kt)
	}
	if !k.Comparable() {
		return nil
	}
	e := m.MapIndex(k)
	if !e.IsValid() {
		return nil
	}
	return e.Interface()
}

// position converts key to an in-range offset.
func position(key any, n int) (int, bool) {
	k := reflect.ValueOf(key)
	var i int
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i = int(k.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i = int(k.Uint())
	default:
		return 0, false
	}
	return i, i >= 0 && i < n
}

// ─────────────────────────────────────────────────────────────────────────────
// Call
// ─────────────────────────────────────────────────────────────────────────────

func call(subject any, name string, args []any) any {
	fn := method(reflect.ValueOf(subject), name)
	if !fn.IsValid() {
		// A function stored under a string key is callable too.
		stored := reflect.ValueOf(property(subject, name))
		if stored.Kind() != reflect.Func || stored.IsNil() {
			return nil
		}
		fn = stored
	}
	in, ok := arguments(fn.Type(), args)
	if !ok {
		return nil
	}
	return result(fn.Call(in))
}

// method finds an exported method on v, including pointer-receiver methods
// of a value that is not addressable.
func method(v reflect.Value, name string) reflect.Value {
	if !v.IsValid() {
		return reflect.Value{}
	}
	if m := v.MethodByName(name); m.IsValid() {
		return m
	}
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		return reflect.Value{}
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.MethodByName(name)
}

func arguments(ft reflect.Type, args []any) ([]reflect.Value, bool) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, false
		}
	} else if len(args) != n {
		return nil, false
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var t reflect.Type
		if ft.IsVariadic() && i >= n-1 {
			t = ft.In(n - 1).Elem()
		} else {
			t = ft.In(i)
		}
		v, ok := convert(a, t)
		if !ok {
			return nil, false
		}
		in[i] = v
	}
	return in, true
}

// result reduces a call's return values to one value: the first, unless the
// last is a non-nil error or a false bool, in which case nil.
func result(out []reflect.Value) any {
	if len(out) == 0 {
		return nil
	}
	if len(out) > 1 {
		last := out[len(out)-1]
		switch {
		case last.Type() == errorType:
			if !last.IsNil() {
				return nil
			}
		case last.Kind() == reflect.Bool:
			if !last.Bool() {
				return nil
			}
		}
	}
	return out[0].Interface()
}

// ─────────────────────────────────────────────────────────────────────────────
// Reflection helpers
// ─────────────────────────────────────────────────────────────────────────────

// deref follows pointers and interfaces. ok is false if it meets a nil.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// convert makes a into a value of type t: directly when assignable, or by
// conversion between numeric kinds or between string kinds. nil converts to
// the zero value of nillable types.
func convert(a any, t reflect.Type) (reflect.Value, bool) {
	if a == nil {
		if nillable(t.Kind()) {
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(t) {
		return v, true
	}
	f := family(v.Kind())
	if f == 0 || f != family(t.Kind()) || !v.Type().ConvertibleTo(t) {
		return reflect.Value{}, false
	}
	c := v.Convert(t)
	// numbers must survive the round trip: 1.5 is not 1, 300 is not an int8
	if f == 1 && !c.Convert(v.Type()).Equal(v) {
		return reflect.Value{}, false
	}
	return c, true
}

func isInteger(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func family(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return 1
	case reflect.String:
		return 2
	}
	return 0
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// isNil reports whether v is nil or a typed nil pointer, map, slice, func,
// channel or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return nillable(rv.Kind()) && rv.IsNil()
}
