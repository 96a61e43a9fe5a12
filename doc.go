// Package mustache implements the Mustache template language
// (https://mustache.github.io/mustache.5.html): comments, interpolation
// (escaped, unescaped, and JSON-escaped), sections, inverted sections,
// partials, delimiter changes, and lambdas.
//
// A template is compiled once with New().CompileString (or CompileFile) and
// can then be rendered any number of times against different data, in any of
// three modes: to an io.Writer (Frender), into a caller-supplied byte slice
// (RenderToBuffer), or into a freshly allocated string (Render).
//
//	tmpl, err := mustache.New().CompileString("Hello {{name}}!")
//	out, err := tmpl.Render(map[string]string{"name": "world"})
//
// Mustache template inheritance ({{<parent}}/{{$block}}) is not implemented;
// a template using those sigils fails to compile.
package mustache
