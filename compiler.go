package mustache

import (
	"encoding/json"
	"os"
)

// ValueStringer converts an arbitrary looked-up value to the string that
// should be written for it, before escaping. The default, when none is
// set, is fmt.Sprint.
type ValueStringer func(value any) (string, error)

// Compiler configures how templates are compiled and rendered: its
// partial provider, escape mode, value stringer, and strictness. Use New
// to get one, chain the With* methods to configure it, and call
// CompileString or CompileFile to produce a *Template.
type Compiler struct {
	partial        PartialProvider
	outputMode     EscapeMode
	valueStringer  ValueStringer
	errorOnMissing bool
}

// New returns a Compiler with default settings: no partial provider,
// EscapeHTML output, the default (fmt.Sprint) value stringer, and missing
// variables/partials rendering as empty rather than erroring.
func New() *Compiler {
	return &Compiler{}
}

// WithPartials adds a partial provider and enables support for partials.
func (c *Compiler) WithPartials(pp PartialProvider) *Compiler {
	c.partial = pp
	return c
}

// WithValueStringer sets a function to convert looked-up values to
// strings, for customizing how non-string values (numbers, times, custom
// types) are rendered.
func (c *Compiler) WithValueStringer(vs ValueStringer) *Compiler {
	c.valueStringer = vs
	return c
}

// WithEscapeMode sets the output mode to EscapeHTML, EscapeJSON, or Raw.
// The default is EscapeHTML.
func (c *Compiler) WithEscapeMode(m EscapeMode) *Compiler {
	c.outputMode = m
	return c
}

// WithErrors enables strict mode: a missing variable, a partial tag with no
// PartialProvider configured, or an error returned by the PartialProvider
// become render errors instead of silently producing empty output. A partial
// that the configured provider cannot find comes back as empty source and
// renders as empty text in strict mode too.
func (c *Compiler) WithErrors(b bool) *Compiler {
	c.errorOnMissing = b
	return c
}

// CompileString compiles a Mustache template from a string.
func (c *Compiler) CompileString(data string) (*Template, error) {
	d := defaultDelimiters()
	return c.compileStringWithDelims(data, d.otag, d.ctag)
}

// compileStringWithDelims compiles data starting from the given delimiter
// pair instead of the default "{{"/"}}". Used to recompile a section
// lambda's captured text under whatever delimiters were active where the
// section was originally written.
func (c *Compiler) compileStringWithDelims(data, otag, ctag string) (*Template, error) {
	tmpl := &Template{
		data:           data,
		otag:           otag,
		ctag:           ctag,
		curline:        1,
		curcol:         0,
		partial:        c.partial,
		outputMode:     c.outputMode,
		valueStringer:  c.valueStringer,
		errorOnMissing: c.errorOnMissing,
		parent:         c,
	}
	if err := tmpl.parse(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

// CompileFile compiles a Mustache template from a file.
func (c *Compiler) CompileFile(filename string) (*Template, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return c.CompileString(string(data))
}

func toJSONString(data any) (string, error) {
	out, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// JSONTemplate compiles template with a Compiler preconfigured for
// producing JSON string bodies: Raw escaping (so the value stringer's own
// JSON encoding is trusted verbatim) paired with a value stringer that
// runs every looked-up value through encoding/json.
func JSONTemplate(template string) (*Template, error) {
	return New().WithEscapeMode(Raw).WithValueStringer(toJSONString).CompileString(template)
}

// RenderJSON compiles template as a JSON-producing template (see
// JSONTemplate) in strict mode and renders it against data in one step.
// Strict mode is used because JSON output with a silently-dropped field is
// rarely what a caller wants: a missing variable becomes a render error
// rather than a null or empty string.
func RenderJSON(template string, data interface{}) (string, error) {
	tmpl, err := New().WithEscapeMode(Raw).WithValueStringer(toJSONString).WithErrors(true).CompileString(template)
	if err != nil {
		return "", err
	}
	return tmpl.Render(data)
}

// Render compiles template with default settings and renders it against
// context in one step.
func Render(template string, context ...interface{}) (string, error) {
	tmpl, err := New().CompileString(template)
	if err != nil {
		return "", err
	}
	return tmpl.Render(context...)
}

// RenderPartials compiles template with the given partial provider and
// renders it against context in one step.
func RenderPartials(template string, partials PartialProvider, context ...interface{}) (string, error) {
	tmpl, err := New().WithPartials(partials).CompileString(template)
	if err != nil {
		return "", err
	}
	return tmpl.Render(context...)
}

// RenderFile compiles the named template file with default settings and
// renders it against context in one step.
func RenderFile(filename string, context ...interface{}) (string, error) {
	tmpl, err := New().CompileFile(filename)
	if err != nil {
		return "", err
	}
	return tmpl.Render(context...)
}

// RenderInLayout compiles template and layout with default settings and
// renders template wrapped in layout against context in one step.
func RenderInLayout(template, layout string, context ...interface{}) (string, error) {
	tmpl, err := New().CompileString(template)
	if err != nil {
		return "", err
	}
	layoutTmpl, err := New().CompileString(layout)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layoutTmpl, context...)
}

// RenderFileInLayout compiles the named template and layout files with
// default settings and renders template wrapped in layout against context
// in one step.
func RenderFileInLayout(filename, layoutFilename string, context ...interface{}) (string, error) {
	tmpl, err := New().CompileFile(filename)
	if err != nil {
		return "", err
	}
	layoutTmpl, err := New().CompileFile(layoutFilename)
	if err != nil {
		return "", err
	}
	return tmpl.RenderInLayout(layoutTmpl, context...)
}
