package expiringvalue

import (
	"github.com/goccy/go-reflect"
)

// equaler is implemented by value types with their own equality.
type equaler[V ValueConstraint] interface {
	Equal(V) bool
}

// hasher is implemented by value types with their own hash.
type hasher interface {
	Hash() int
}

// equalValues compares a and b by the element type's equality:
// an Equal method when present, == for scalar kinds, and deep equality otherwise.
func equalValues[V ValueConstraint](a, b V) bool {
	if e, ok := any(a).(equaler[V]); ok && !isNil(a) {
		return e.Equal(b)
	}

	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
	if tx != ty {
		return false
	}

	// Structs, arrays and interfaces may be statically comparable yet hold
	// an uncomparable dynamic value, on which == panics.
	switch tx.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String, reflect.Ptr, reflect.Chan, reflect.UnsafePointer:
		return x == y
	default:
		return reflect.DeepEqual(x, y)
	}
}

// isNil reports whether v is nil or a typed nil.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
