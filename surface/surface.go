// Package surface loads endpoint declarations from YAML and generates
// typed apiclient code from them.
//
// A declaration file maps endpoint templates to the methods they accept:
//
//	package: petstore
//	endpoints:
//	  /users:
//	    get:
//	      query:
//	        nameIncludes?: string
//	        minAge?: int
//	      response: "[]User"
//	    post:
//	      body: NewUser
//	      response: User
//	  /users/:userId:
//	    name: User
//	    get: {response: User}
//
// Endpoints, methods, and query keys keep their file order. A "?" suffix
// on a query key marks it optional. Inside a flow mapping such keys must be
// quoted ({"minAge?": int}).
package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/apiclient"
)

// Surface is the declared API surface of one generated package.
type Surface struct {
	Package   string    `yaml:"package"`
	Imports   []string  `yaml:"imports,omitempty"`
	Endpoints Endpoints `yaml:"endpoints"`
}

// Endpoints is the ordered list of declared endpoint templates.
type Endpoints []Endpoint

// Endpoint is one endpoint template and the operations it accepts.
type Endpoint struct {
	Template   string
	Name       string
	Operations []Operation
	Line       int
}

// Operation is one method on an endpoint.
type Operation struct {
	Method   apiclient.Method
	Query    []Field
	Body     string
	Response string
	Line     int
}

// Field is one query key and its Go type.
type Field struct {
	Name     string
	Type     string
	Optional bool
}

// Load decodes a surface from r. It does not validate; call Validate.
func Load(r io.Reader) (*Surface, error) {
	var s Surface
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode surface: %w", err)
	}
	return &s, nil
}

// LoadFile decodes and validates the surface at path.
func LoadFile(path string) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		//nolint:errcheck,gosec // read-only file
		f.Close()
	}()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Endpoint returns the endpoint declared for template.
func (s *Surface) Endpoint(template string) (Endpoint, bool) {
	for _, ep := range s.Endpoints {
		if ep.Template == template {
			return ep, true
		}
	}
	return Endpoint{}, false
}

// Operation returns the operation declared for m.
func (ep Endpoint) Operation(m apiclient.Method) (Operation, bool) {
	for _, op := range ep.Operations {
		if op.Method == m {
			return op, true
		}
	}
	return Operation{}, false
}

// UnmarshalYAML walks the endpoints mapping in document order.
func (e *Endpoints) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: endpoints must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		ep := Endpoint{Template: key.Value, Line: key.Line}
		if err := ep.decode(val); err != nil {
			return err
		}
		*e = append(*e, ep)
	}
	return nil
}

type rawOperation struct {
	Query    yaml.Node `yaml:"query"`
	Body     string    `yaml:"body"`
	Response string    `yaml:"response"`
}

func (ep *Endpoint) decode(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: endpoint %q must be a mapping", n.Line, ep.Template)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Value == "name" {
			ep.Name = val.Value
			continue
		}

		var raw rawOperation
		if err := val.Decode(&raw); err != nil {
			return fmt.Errorf("line %d: %s %s: %w", key.Line, key.Value, ep.Template, err)
		}
		op := Operation{
			Method:   apiclient.Method(strings.ToLower(key.Value)),
			Body:     raw.Body,
			Response: raw.Response,
			Line:     key.Line,
		}
		fields, err := decodeFields(&raw.Query)
		if err != nil {
			return fmt.Errorf("line %d: %s %s: %w", key.Line, key.Value, ep.Template, err)
		}
		op.Query = fields
		ep.Operations = append(ep.Operations, op)
	}
	return nil
}

func decodeFields(n *yaml.Node) ([]Field, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: query must be a mapping", n.Line)
	}
	fields := make([]Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, optional := strings.CutSuffix(n.Content[i].Value, "?")
		fields = append(fields, Field{
			Name:     name,
			Type:     n.Content[i+1].Value,
			Optional: optional,
		})
	}
	return fields, nil
}
