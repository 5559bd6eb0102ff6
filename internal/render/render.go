// Package render produces the canonical artifact content and component
// scaffolds from templates embedded in the binary. Rendering has no inputs
// beyond the fixed template data, so output is deterministic.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"text/template"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Template names within templateFS.
const (
	headerTemplate     = "global_header.tsx.tmpl"
	functionalTemplate = "functional.tsx.tmpl"
	pageTemplate       = "page.tsx.tmpl"
)

// Delimiters avoid clashing with JSX braces.
const (
	leftDelim  = "[["
	rightDelim = "]]"
)

var componentName = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)

// HeaderData holds the fixed values substituted into the header template.
type HeaderData struct {
	Brand     string
	Tagline   string
	LoginPath string
}

// DefaultHeader is the header data used unless overridden.
var DefaultHeader = HeaderData{
	Brand:     "DesenrolaDCL",
	Tagline:   "Sistema de Gestão de Pedidos",
	LoginPath: "/login",
}

// DefaultProject names the project in page scaffolds.
const DefaultProject = "Desenrola DCL"

// Renderer renders the managed artifact and component scaffolds.
type Renderer struct {
	tmpl    *template.Template
	header  HeaderData
	project string
	content string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHeader overrides the header template data.
func WithHeader(data HeaderData) Option {
	return func(r *Renderer) { r.header = data }
}

// WithProject overrides the project name used in page scaffolds.
func WithProject(name string) Option {
	return func(r *Renderer) { r.project = name }
}

// New parses the embedded templates and renders the artifact once.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{header: DefaultHeader, project: DefaultProject}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := template.New("render").
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl

	content, err := r.execute(headerTemplate, r.header)
	if err != nil {
		return nil, err
	}
	r.content = content
	return r, nil
}

// Render returns the canonical artifact content. Every call returns the same
// string.
func (r *Renderer) Render() string {
	return r.content
}

// Scaffold renders a component template for name. kind selects
// types.KindFunctional or types.KindPage; any other value falls back to
// types.KindFunctional.
func (r *Renderer) Scaffold(name, kind string) (string, error) {
	if !componentName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", types.ErrInvalidComponentName, name)
	}
	data := struct {
		Name    string
		Project string
	}{Name: name, Project: r.project}

	if kind == types.KindPage {
		return r.execute(pageTemplate, data)
	}
	return r.execute(functionalTemplate, data)
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
