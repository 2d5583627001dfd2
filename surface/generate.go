package surface

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strings"
	"text/template"

	"github.com/bjaus/apiclient"
)

const (
	clientImport = "github.com/bjaus/apiclient"
	voidType     = "apiclient.Void"
)

// Header marks generated files so tools and reviewers skip them.
const Header = "// Code generated by apigen. DO NOT EDIT."

type genFile struct {
	Package   string
	Imports   []string
	Endpoints []genEndpoint
}

type genEndpoint struct {
	Template   string
	Base       string
	Params     string
	Fields     []genField
	DefaultQ   string
	Operations []genOperation
}

type genOperation struct {
	Method  string
	Const   string
	Field   string
	Query   string
	Fields  []genField
	Body    string
	Resp    string
	Generic string
	Send    bool
}

type genField struct {
	Name string
	Type string
	Tag  string
}

var fileTmpl = template.Must(template.New("file").Parse(`{{.Header}}

package {{.File.Package}}

import (
{{- range .File.Imports}}
	"{{.}}"
{{- end}}
)
{{range $ep := .File.Endpoints}}
{{- if $ep.Fields}}
// {{$ep.Params}} holds the path parameters of {{$ep.Template}}.
type {{$ep.Params}} struct {
{{- range $ep.Fields}}
	{{.Name}} {{.Type}} ` + "`{{.Tag}}`" + `
{{- end}}
}
{{end}}
{{- range $ep.Operations}}
{{- if .Fields}}
// {{.Query}} is the query of {{.Method}} {{$ep.Template}}.
type {{.Query}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} ` + "`{{.Tag}}`" + `
{{- end}}
}
{{end}}
{{- end}}
{{- end}}
// Client holds one typed call per declared endpoint and method.
type Client struct {
{{- range $ep := .File.Endpoints}}
{{- range .Operations}}
{{- if .Send}}
	{{.Field}} apiclient.SendCall[{{$ep.Params}}, {{.Query}}, {{.Body}}, {{.Resp}}]
{{- else if eq .Generic "read"}}
	{{.Field}} apiclient.Call[{{$ep.Params}}, {{.Query}}, {{.Resp}}]
{{- else}}
	{{.Field}} apiclient.Call[{{$ep.Params}}, {{.Body}}, {{.Resp}}]
{{- end}}
{{- end}}
{{- end}}
}

// NewClient declares every call on c.
func NewClient(c *apiclient.Client) *Client {
	return &Client{
{{- range $ep := .File.Endpoints}}
{{- range .Operations}}
{{- if .Send}}
		{{.Field}}: apiclient.Send[{{$ep.Params}}, {{.Query}}, {{.Body}}, {{.Resp}}](c, apiclient.{{.Const}}, {{printf "%q" $ep.Template}}),
{{- else if eq .Generic "read"}}
		{{.Field}}: apiclient.{{.Method}}[{{$ep.Params}}, {{.Query}}, {{.Resp}}](c, {{printf "%q" $ep.Template}}),
{{- else}}
		{{.Field}}: apiclient.{{.Method}}[{{$ep.Params}}, {{.Body}}, {{.Resp}}](c, {{printf "%q" $ep.Template}}),
{{- end}}
{{- end}}
{{- end}}
	}
}

// URLs holds one URL function per endpoint and per endpoint method.
type URLs struct {
{{- range $ep := .File.Endpoints}}
	{{$ep.Base}} apiclient.URLFunc[{{$ep.Params}}, {{$ep.DefaultQ}}]
{{- range .Operations}}
	{{.Field}} apiclient.URLFunc[{{$ep.Params}}, {{.Query}}]
{{- end}}
{{- end}}
}

// NewURLs returns URL functions rooted at prefix.
func NewURLs(prefix string) *URLs {
	return &URLs{
{{- range $ep := .File.Endpoints}}
		{{$ep.Base}}: apiclient.MakeURL[{{$ep.Params}}, {{$ep.DefaultQ}}]({{printf "%q" $ep.Template}}, apiclient.WithPrefix(prefix)),
{{- range .Operations}}
		{{.Field}}: apiclient.MakeURL[{{$ep.Params}}, {{.Query}}]({{printf "%q" $ep.Template}}, apiclient.WithPrefix(prefix), apiclient.WithMethod(apiclient.{{.Const}})),
{{- end}}
{{- end}}
	}
}
`))

// Generate renders the Go source for s. The surface must be valid.
func Generate(s *Surface) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, struct {
		Header string
		File   genFile
	}{Header: Header, File: model(s)})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", s.Package, err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", s.Package, err)
	}
	return out, nil
}

func model(s *Surface) genFile {
	imports := slices.Clone(s.Imports)
	if !slices.Contains(imports, clientImport) {
		imports = append(imports, clientImport)
	}
	slices.Sort(imports)

	f := genFile{Package: s.Package, Imports: slices.Compact(imports)}
	for _, ep := range s.Endpoints {
		f.Endpoints = append(f.Endpoints, modelEndpoint(ep))
	}
	return f
}

func modelEndpoint(ep Endpoint) genEndpoint {
	g := genEndpoint{
		Template: ep.Template,
		Base:     ep.BaseName(),
		Params:   voidType,
		DefaultQ: voidType,
	}

	if params := apiclient.ParseTemplate(ep.Template).Params(); len(params) > 0 {
		g.Params = g.Base + "Params"
		for _, p := range params {
			g.Fields = append(g.Fields, genField{
				Name: pascal(p),
				Type: "string",
				Tag:  fmt.Sprintf("path:%q", p),
			})
		}
	}

	for _, op := range ep.Operations {
		o := genOperation{
			Method: methodName(op.Method),
			Const:  "Method" + methodName(op.Method),
			Field:  methodName(op.Method) + g.Base,
			Query:  voidType,
			Body:   orVoid(op.Body),
			Resp:   orVoid(op.Response),
		}
		if len(op.Query) > 0 {
			o.Query = g.Base + o.Method + "Query"
			for _, q := range op.Query {
				o.Fields = append(o.Fields, queryField(q))
			}
		}
		switch {
		case op.Method.ReadOnly():
			o.Generic = "read"
		case len(op.Query) > 0:
			o.Send = true
		default:
			o.Generic = "write"
		}
		if op.Method == apiclient.MethodGet {
			g.DefaultQ = o.Query
		}
		g.Operations = append(g.Operations, o)
	}
	return g
}

func queryField(f Field) genField {
	typ := strings.TrimSpace(f.Type)
	if f.Optional {
		return genField{
			Name: pascal(f.Name),
			Type: "*" + typ,
			Tag:  fmt.Sprintf("query:%q", f.Name+",omitempty"),
		}
	}
	return genField{
		Name: pascal(f.Name),
		Type: typ,
		Tag:  fmt.Sprintf("query:%q", f.Name),
	}
}

func orVoid(typ string) string {
	if typ == "" {
		return voidType
	}
	return typ
}
