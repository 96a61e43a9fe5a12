package mustache

import (
	"bytes"
	"reflect"
)

// RenderFn is the signature handed to a section lambda so it can render an
// arbitrary chunk of mustache source against the lambda's own context stack
// (used to expand a placeholder embedded in the text the lambda returns).
type RenderFn func(text string) (string, error)

// lambdaRenderFn builds the RenderFn passed to a lambda invoked against
// contextChain: compiling text with the same compiler configuration as
// tmpl, under delims, then rendering it against that chain.
func (tmpl *Template) lambdaRenderFn(contextChain []interface{}, delims delimiters) RenderFn {
	return func(text string) (string, error) {
		compiled, err := tmpl.parent.compileStringWithDelims(text, delims.otag, delims.ctag)
		if err != nil {
			return "", err
		}
		var buf bytes.Buffer
		if err := compiled.renderTemplate(contextChain, &buf); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}

// callLambda invokes a reflect.Func value found during lookup as a mustache
// lambda and returns the string it contributes to the output. Two call
// shapes are recognized, tried in this order:
//
//   - func() string — the niladic convenience shape, recognized only when
//     allowNiladic is set (interpolation tags; a section has no access to its
//     own inner text through this shape, so it is never dispatched there).
//     Its result is compiled as mustache source and rendered against
//     contextChain, matching the Mustache spec's rule that an interpolation
//     lambda's return value is itself parsed and rendered.
//   - func(text string, render RenderFn) (string, error) — the section-lambda
//     shape. Its result is likewise compiled as mustache source under delims
//     and rendered against contextChain; render lets the lambda expand text
//     itself while building that result.
//
// ok is false if v's type matches neither recognized shape, and the caller
// should fall back to treating the value as ordinary (non-lambda) data.
// delims is the delimiter pair in effect where text was captured (a section's
// own delimiters, or the default pair for a variable-tag lambda, which has no
// captured text of its own).
func (tmpl *Template) callLambda(v reflect.Value, text string, contextChain []interface{}, delims delimiters, allowNiladic bool) (result string, ok bool, err error) {
	typ := v.Type()

	if allowNiladic && typ.NumIn() == 0 && typ.NumOut() == 1 && typ.Out(0).Kind() == reflect.String {
		out := v.Call(nil)[0].String()
		compiled, cerr := tmpl.parent.compileStringWithDelims(out, delims.otag, delims.ctag)
		if cerr != nil {
			return "", true, cerr
		}
		var buf bytes.Buffer
		if rerr := compiled.renderTemplate(contextChain, &buf); rerr != nil {
			return "", true, rerr
		}
		return buf.String(), true, nil
	}

	stringType := reflect.TypeOf("")
	errorType := reflect.TypeOf((*error)(nil)).Elem()
	renderFnType := reflect.TypeOf(RenderFn(nil))
	if typ.NumIn() == 2 && typ.In(0) == stringType && typ.In(1) == renderFnType &&
		typ.NumOut() == 2 && typ.Out(0) == stringType && typ.Out(1).Implements(errorType) {
		render := tmpl.lambdaRenderFn(contextChain, delims)
		args := []reflect.Value{reflect.ValueOf(text), reflect.ValueOf(render)}
		res := v.Call(args)
		if errv := res[1]; !errv.IsNil() {
			return "", true, errv.Interface().(error)
		}
		compiled, cerr := tmpl.parent.compileStringWithDelims(res[0].String(), delims.otag, delims.ctag)
		if cerr != nil {
			return "", true, cerr
		}
		var buf bytes.Buffer
		if rerr := compiled.renderTemplate(contextChain, &buf); rerr != nil {
			return "", true, rerr
		}
		return buf.String(), true, nil
	}

	return "", false, nil
}
