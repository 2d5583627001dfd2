package surface

import (
	"strings"
	"unicode"

	"github.com/bjaus/apiclient"
)

var initialisms = map[string]string{
	"api":  "API",
	"http": "HTTP",
	"id":   "ID",
	"json": "JSON",
	"url":  "URL",
	"uuid": "UUID",
}

// BaseName returns the Go name for an endpoint: its explicit name, or one
// derived from the template. "/users/:userId/posts" becomes
// "UsersByUserIDPosts" and "/" becomes "Root".
func (ep Endpoint) BaseName() string {
	if ep.Name != "" {
		return pascal(ep.Name)
	}
	var b strings.Builder
	for _, seg := range strings.Split(ep.Template, "/") {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			b.WriteString("By")
			seg = name
		}
		b.WriteString(pascal(seg))
	}
	if b.Len() == 0 {
		return "Root"
	}
	return b.String()
}

func methodName(m apiclient.Method) string {
	return pascal(string(m))
}

// pascal converts s to an exported Go identifier, splitting on anything
// that is not a letter or digit and on lower-to-upper case changes.
func pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		if up, ok := initialisms[strings.ToLower(w)]; ok {
			b.WriteString(up)
			continue
		}
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	out := b.String()
	if out != "" && unicode.IsDigit(rune(out[0])) {
		out = "X" + out
	}
	return out
}

func words(s string) []string {
	var (
		out  []string
		cur  []rune
		prev rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return out
}
