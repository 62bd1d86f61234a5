package internal

import (
	"reflect"
)

// EqualFunc decides whether two derived values are equivalent.
type EqualFunc func(a, b any) bool

// StrictEqual is reference identity. Maps, slices, pointers and channels are
// identical when they share backing storage; funcs when they share code;
// comparable values when ==.
func StrictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	return identical(va, vb)
}

func identical(va, vb reflect.Value) bool {
	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		ea, eb := va.Elem(), vb.Elem()
		return ea.Type() == eb.Type() && identical(ea, eb)
	case reflect.Struct:
		if va.Comparable() && vb.Comparable() {
			return va.Equal(vb)
		}
		for i := range va.NumField() {
			if !identical(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := range va.Len() {
			if !identical(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	default:
		return va.Equal(vb)
	}
}

// ShallowEqual compares two records key by key (maps) or field by field
// (structs of the same type) using StrictEqual on the values.
func ShallowEqual(a, b any) bool {
	if StrictEqual(a, b) {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}

	switch va.Kind() {
	case reflect.Map:
		if va.Type().Key().Kind() != reflect.String || vb.Type().Key().Kind() != reflect.String {
			return false
		}
		if va.Len() != vb.Len() {
			return false
		}
		iter := va.MapRange()
		for iter.Next() {
			other := vb.MapIndex(iter.Key().Convert(vb.Type().Key()))
			if !other.IsValid() {
				return false
			}
			if !StrictEqual(valueOf(iter.Value()), valueOf(other)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		if va.Type() != vb.Type() {
			return false
		}
		for i := range va.NumField() {
			if !identical(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func valueOf(v reflect.Value) any {
	if v.Kind() == reflect.Interface && v.IsNil() {
		return nil
	}
	if !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
