package internal

import (
	"reflect"
)

// Private action types. Reducers must never handle them explicitly.
const (
	privatePrefix = "@@dux/"

	ActionTypeInit  = privatePrefix + "INIT"
	actionTypeProbe = privatePrefix + "PROBE_UNKNOWN_ACTION_"
)

// Action is the map form of a plain action record. The type lives under "type".
type Action map[string]any

// Type returns the action's discriminator, nil if missing.
func (a Action) Type() any { return a["type"] }

// Typed lets a struct action carry its discriminator through a method instead
// of a Type field.
type Typed interface {
	ActionType() string
}

type null struct{}

func (null) String() string { return "null" }

// Null is what a reducer returns when it deliberately holds no value.
// A nil return is treated as "undefined" and rejected.
var Null any = null{}

// IsPlainRecord reports whether v is a keyed record: a map with string keys or
// a struct value. Pointers, slices, scalars, funcs and nil are not records.
func IsPlainRecord(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	default:
		return false
	}
}

// TypeOf extracts the discriminator of an action, nil when the action has none.
func TypeOf(action any) any {
	switch a := action.(type) {
	case nil:
		return nil
	case Action:
		return a.Type()
	case map[string]any:
		return a["type"]
	case Typed:
		return a.ActionType()
	}

	rv := reflect.ValueOf(action)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf("type").Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return undefinedIfNil(v)
	case reflect.Struct:
		f, ok := rv.Type().FieldByName("Type")
		if !ok || !f.IsExported() {
			return nil
		}
		return undefinedIfNil(rv.FieldByIndex(f.Index))
	default:
		return nil
	}
}

func undefinedIfNil(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}

	return v.Interface()
}

func validateAction(action any) error {
	if !IsPlainRecord(action) {
		return typeErrorf("actions must be plain records, got %T; use custom middleware for other values", action)
	}

	if TypeOf(action) == nil {
		return typeErrorf("actions may not have an undefined type; have you misspelled a constant?")
	}

	return nil
}
