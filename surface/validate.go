package surface

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/bjaus/apiclient"
)

// ErrInvalid is wrapped by every error Validate reports.
var ErrInvalid = errors.New("invalid surface")

// Validate reports every problem in the surface at once.
func (s *Surface) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !token.IsIdentifier(s.Package) {
		add("package name %q is not a Go identifier", s.Package)
	}
	if len(s.Endpoints) == 0 {
		add("no endpoints declared")
	}

	templates := make(map[string]int)
	names := make(map[string]string)
	claim := func(name, owner string) {
		if prev, ok := names[name]; ok {
			add("generated name %s used by both %s and %s", name, prev, owner)
			return
		}
		names[name] = owner
	}

	for _, ep := range s.Endpoints {
		at := fmt.Sprintf("line %d: %s", ep.Line, ep.Template)

		if !strings.HasPrefix(ep.Template, "/") {
			add("%s: template must start with /", at)
		}
		if prev, ok := templates[ep.Template]; ok {
			add("%s: template already declared on line %d", at, prev)
			continue
		}
		templates[ep.Template] = ep.Line

		seen := make(map[string]bool)
		for _, p := range apiclient.ParseTemplate(ep.Template).Params() {
			switch {
			case p == "":
				add("%s: empty parameter name", at)
			case pascal(p) == "":
				add("%s: parameter %q has no Go name", at, p)
			case seen[pascal(p)]:
				add("%s: parameter %q repeated", at, p)
			}
			seen[pascal(p)] = true
		}

		if len(ep.Operations) == 0 {
			add("%s: no methods declared", at)
		}

		base := ep.BaseName()
		if base == "" {
			add("%s: cannot derive a Go name, set name", at)
			continue
		}
		claim(base, ep.Template)

		methods := make(map[apiclient.Method]bool)
		for _, op := range ep.Operations {
			opAt := fmt.Sprintf("line %d: %s %s", op.Line, op.Method, ep.Template)
			if _, err := apiclient.ParseMethod(string(op.Method)); err != nil {
				add("%s: %w", opAt, err)
				continue
			}
			if methods[op.Method] {
				add("%s: method declared twice", opAt)
				continue
			}
			methods[op.Method] = true
			claim(methodName(op.Method)+base, ep.Template)

			if op.Body != "" && op.Method.ReadOnly() {
				add("%s: read-only methods take no body", opAt)
			}
			for _, typ := range []string{op.Body, op.Response} {
				if typ != "" && !validType(typ) {
					add("%s: %q is not a Go type", opAt, typ)
				}
			}

			keys := make(map[string]bool)
			for _, f := range op.Query {
				switch {
				case f.Name == "":
					add("%s: empty query key", opAt)
				case pascal(f.Name) == "":
					add("%s: query key %q has no Go name", opAt, f.Name)
				case keys[pascal(f.Name)]:
					add("%s: query key %q repeated", opAt, f.Name)
				case !validType(f.Type):
					add("%s: query key %q: %q is not a Go type", opAt, f.Name, f.Type)
				}
				keys[pascal(f.Name)] = true
			}
		}
	}

	return result.ErrorOrNil()
}

func validType(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := parser.ParseExpr(s)
	return err == nil
}
