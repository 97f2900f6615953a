// Package document prepares arbitrary nested data for a document store.
//
// Document stores require string keys at every level of a document. Sanitize
// rewrites every map it finds into a map[string]any with stringified keys and
// leaves all other values untouched.
package document

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// TimeKeyLayout is used when a map key is a time.Time.
const TimeKeyLayout = "2006-01-02 15:04:05"

// ErrCyclicDocument is returned when a map or slice contains itself.
var ErrCyclicDocument = errors.New("document contains a cyclic reference")

// Sanitize returns a copy of v in which every map has string keys.
// Slices and arrays (except []byte) become []any. Pointers and interfaces are
// followed; any other value is returned unchanged.
func Sanitize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	return sanitize(reflect.ValueOf(v), map[visitKey]struct{}{})
}

// visitKey identifies a map or slice on the current path. Slices sharing a
// backing array are told apart by length.
type visitKey struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// SanitizeMap sanitizes a map-shaped document. It fails if m is not a map.
func SanitizeMap(m any) (map[string]any, error) {
	out, err := Sanitize(m)
	if err != nil {
		return nil, err
	}
	doc, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document must be a map, got %T", m)
	}
	return doc, nil
}

// KeyString converts a map key to its document form.
func KeyString(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(TimeKeyLayout)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(k)
	}
}

func sanitize(rv reflect.Value, visiting map[visitKey]struct{}) (any, error) {
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return rv.Interface(), nil
		}
		if rv.Kind() == reflect.Pointer {
			// ポインタ先がmap/sliceでなければそのまま返す
			switch rv.Elem().Kind() {
			case reflect.Map, reflect.Slice, reflect.Array, reflect.Interface, reflect.Pointer:
			default:
				return rv.Interface(), nil
			}
		}
		return sanitize(rv.Elem(), visiting)

	case reflect.Map:
		if rv.IsNil() {
			return map[string]any(nil), nil
		}
		key := visitKey{ptr: rv.Pointer(), len: -1, typ: rv.Type()}
		if _, ok := visiting[key]; ok {
			return nil, ErrCyclicDocument
		}
		visiting[key] = struct{}{}
		defer delete(visiting, key)

		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val, err := sanitize(iter.Value(), visiting)
			if err != nil {
				return nil, err
			}
			out[KeyString(iter.Key().Interface())] = val
		}
		return out, nil

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Interface(), nil
		}
		if rv.IsNil() {
			return []any(nil), nil
		}
		if rv.Len() > 0 {
			key := visitKey{ptr: rv.Pointer(), len: rv.Len(), typ: rv.Type()}
			if _, ok := visiting[key]; ok {
				return nil, ErrCyclicDocument
			}
			visiting[key] = struct{}{}
			defer delete(visiting, key)
		}
		return sanitizeList(rv, visiting)

	case reflect.Array:
		return sanitizeList(rv, visiting)

	case reflect.Invalid:
		return nil, nil

	default:
		return rv.Interface(), nil
	}
}

func sanitizeList(rv reflect.Value, visiting map[visitKey]struct{}) ([]any, error) {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		val, err := sanitize(rv.Index(i), visiting)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}
