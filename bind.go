package apiclient

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Void is used as a type parameter when a call has no path parameters,
// no query, no body, or no response body.
type Void struct{}

// ParamsFrom converts a typed parameter bag into Params. It accepts nil,
// Void, Params, map[string]string, map[string]any, and structs (or
// pointers to structs) whose fields carry `path:"name"` tags.
func ParamsFrom(v any) (Params, error) {
	switch x := v.(type) {
	case nil, Void, *Void:
		return nil, nil
	case Params:
		return x, nil
	case map[string]string:
		return Params(x), nil
	case map[string]any:
		p := make(Params, len(x))
		for k, val := range x {
			if s, ok := formatValue(val); ok {
				p[k] = s
			}
		}
		return p, nil
	}

	rv, ok := structValue(v)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %T", ErrBindParams, v)
	}
	if !rv.IsValid() {
		return nil, nil
	}

	p := make(Params)
	for _, f := range taggedFields(rv.Type(), "path") {
		if s, ok := formatValue(rv.Field(f.index).Interface()); ok {
			p[f.name] = s
		}
	}
	return p, nil
}

// QueryFrom converts a typed query bag into a *Query. It accepts nil,
// Void, *Query, Query, map[string]string and map[string]any (keys sorted,
// since maps carry no insertion order), and structs (or pointers to
// structs) whose fields carry `query:"name[,omitempty]"` tags; field order
// is insertion order.
func QueryFrom(v any) (*Query, error) {
	switch x := v.(type) {
	case nil, Void, *Void:
		return nil, nil
	case *Query:
		return x, nil
	case Query:
		return &x, nil
	case map[string]string:
		q := NewQuery()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			q.Set(k, x[k])
		}
		return q, nil
	case map[string]any:
		q := NewQuery()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			q.Set(k, x[k])
		}
		return q, nil
	}

	rv, ok := structValue(v)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported type %T", ErrBindQuery, v)
	}
	if !rv.IsValid() {
		return nil, nil
	}

	q := NewQuery()
	for _, f := range taggedFields(rv.Type(), "query") {
		field := rv.Field(f.index)
		if f.omitEmpty && field.IsZero() {
			continue
		}
		q.Set(f.name, field.Interface())
	}
	return q, nil
}

// structValue dereferences v down to a struct. A nil pointer yields an
// invalid Value and true.
func structValue(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, rv.Type().Elem().Kind() == reflect.Struct
		}
		rv = rv.Elem()
	}
	return rv, rv.Kind() == reflect.Struct
}
