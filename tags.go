package apiclient

import (
	"reflect"
	"strings"
)

// taggedField is an exported struct field carrying a bag tag.
type taggedField struct {
	index     int
	name      string
	omitEmpty bool
}

// taggedFields returns the fields of struct type t carrying tag, in
// declaration order. A tag value of "-" excludes the field.
func taggedFields(t reflect.Type, tag string) []taggedField {
	var fields []taggedField
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		raw := f.Tag.Get(tag)
		if raw == "" || raw == "-" {
			continue
		}
		name, opts := tagOptions(raw)
		if name == "" {
			name = f.Name
		}
		fields = append(fields, taggedField{
			index:     i,
			name:      name,
			omitEmpty: tagContains(opts, "omitempty"),
		})
	}
	return fields
}

// tagOptions splits a struct tag value on comma and returns
// the name and remaining options.
func tagOptions(tag string) (string, string) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts
}

// tagContains reports whether a comma-separated list of options
// contains a particular option.
func tagContains(opts string, name string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == name {
			return true
		}
	}
	return false
}
