package apiclient

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Query is an insertion-ordered query bag. The zero value is ready to use.
// A nil *Query reads as an empty bag but cannot be written to.
type Query struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// NewQuery returns an empty query bag.
func NewQuery() *Query {
	return &Query{pairs: orderedmap.New[string, any]()}
}

// Set stores value under key and returns q for chaining. Setting an
// existing key replaces its value but keeps its original position.
// A nil value (or nil pointer) marks the key as absent. Set panics on a
// nil *Query.
func (q *Query) Set(key string, value any) *Query {
	if q == nil {
		panic("apiclient: Set on nil *Query")
	}
	if q.pairs == nil {
		q.pairs = orderedmap.New[string, any]()
	}
	q.pairs.Set(key, value)
	return q
}

// Get returns the value stored under key.
func (q *Query) Get(key string) (any, bool) {
	if q == nil || q.pairs == nil {
		return nil, false
	}
	return q.pairs.Get(key)
}

// Del removes key from the bag.
func (q *Query) Del(key string) {
	if q == nil || q.pairs == nil {
		return
	}
	q.pairs.Delete(key)
}

// Len returns the number of keys, absent values included.
func (q *Query) Len() int {
	if q == nil || q.pairs == nil {
		return 0
	}
	return q.pairs.Len()
}

// Keys returns the keys in insertion order.
func (q *Query) Keys() []string {
	if q.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, q.pairs.Len())
	for p := q.pairs.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// String returns the serialized query string.
func (q *Query) String() string { return Serialize(q) }

// Serialize renders q as "k1=v1&k2=v2" in insertion order, without a
// leading "?". Absent values are skipped; values are not escaped.
func Serialize(q *Query) string {
	if q.Len() == 0 {
		return ""
	}

	var sb strings.Builder
	for p := q.pairs.Oldest(); p != nil; p = p.Next() {
		val, ok := formatValue(p.Value)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(val)
	}
	return sb.String()
}

// formatValue renders a primitive value as plain text. It reports false
// for absent values: a nil interface or a nil pointer.
func formatValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}

	//exhaustive:ignore
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	default:
		return fmt.Sprint(rv.Interface()), true
	}
}
