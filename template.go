package apiclient

import "strings"

// Params maps path parameter names to their values.
type Params map[string]string

// segment is one "/"-delimited piece of a template.
type segment struct {
	value string
	param bool
}

// Template is a parsed endpoint template such as "/users/:userId".
// The zero value renders to the empty string.
type Template struct {
	raw      string
	segments []segment
}

// ParseTemplate splits raw on "/" and records which segments name a
// parameter. Templates are never rejected.
func ParseTemplate(raw string) Template {
	parts := strings.Split(raw, "/")
	t := Template{raw: raw, segments: make([]segment, len(parts))}
	for i, p := range parts {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			t.segments[i] = segment{value: name, param: true}
			continue
		}
		t.segments[i] = segment{value: p}
	}
	return t
}

// String returns the template as it was written.
func (t Template) String() string { return t.raw }

// Params returns the parameter names in template order.
func (t Template) Params() []string {
	var names []string
	for _, s := range t.segments {
		if s.param {
			names = append(names, s.value)
		}
	}
	return names
}

// Render substitutes every named segment with its value from params.
// Values are inserted verbatim. Extra keys are ignored.
func (t Template) Render(params Params) (string, error) {
	if len(t.segments) == 0 {
		return t.raw, nil
	}

	var sb strings.Builder
	sb.Grow(len(t.raw))
	for i, s := range t.segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		if !s.param {
			sb.WriteString(s.value)
			continue
		}
		val, ok := params[s.value]
		if !ok {
			return "", &MissingPathParameterError{Param: s.value, Template: t.raw}
		}
		sb.WriteString(val)
	}
	return sb.String(), nil
}

// Render parses template and renders it with params.
func Render(template string, params Params) (string, error) {
	return ParseTemplate(template).Render(params)
}
