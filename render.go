package mustache

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
)

func (tmpl *Template) valueString(value any) (string, error) {
	if tmpl.valueStringer != nil {
		return tmpl.valueStringer(value)
	}
	return fmt.Sprint(value), nil
}

func (tmpl *Template) renderSection(section *sectionElement, contextChain []interface{}, buf io.Writer) error {
	value, err := lookup(contextChain, section.name, tmpl.errorOnMissing)
	if err != nil {
		return err
	}
	context := contextChain[0].(reflect.Value)
	empty := isEmpty(value)
	if empty && !section.inverted || !empty && section.inverted {
		return nil
	}

	var contexts []interface{}
	if section.inverted {
		contexts = append(contexts, context)
	} else {
		valueInd := indirect(value)
		switch val := valueInd; val.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < val.Len(); i++ {
				contexts = append(contexts, val.Index(i))
			}
		case reflect.Map, reflect.Struct:
			contexts = append(contexts, value)
		case reflect.Func:
			result, ok, lerr := tmpl.callLambda(val, section.raw, contextChain, section.delims, false)
			if lerr != nil {
				return lerr
			}
			if ok {
				_, werr := io.WriteString(buf, result)
				return werr
			}
			contexts = append(contexts, value)
		default:
			// Non-false sections have their value at the top of context,
			// accessible as {{.}} or through the parent context.
			contexts = append(contexts, value)
		}
	}

	chain2 := make([]interface{}, len(contextChain)+1)
	copy(chain2[1:], contextChain)
	for _, ctx := range contexts {
		chain2[0] = ctx
		for _, elem := range section.elems {
			if err := tmpl.renderElement(elem, chain2, buf); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tmpl *Template) renderElement(element interface{}, contextChain []interface{}, buf io.Writer) error {
	switch elem := element.(type) {
	case *textElement:
		_, err := io.WriteString(buf, elem.text)
		return err
	case *varElement:
		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("mustache: panic while looking up %q: %v\n", elem.name, r)
			}
		}()
		val, err := lookup(contextChain, elem.name, tmpl.errorOnMissing)
		if err != nil {
			return err
		}
		if !val.IsValid() {
			return nil
		}

		if indirect(val).Kind() == reflect.Func {
			result, ok, lerr := tmpl.callLambda(indirect(val), "", contextChain, defaultDelimiters(), true)
			if lerr != nil {
				return lerr
			}
			if ok {
				if elem.raw {
					_, werr := io.WriteString(buf, result)
					return werr
				}
				return writeEscaped(buf, result, tmpl.outputMode)
			}
		}

		if elem.raw {
			_, err := fmt.Fprint(buf, val.Interface())
			return err
		}
		s, err := tmpl.valueString(val.Interface())
		if err != nil {
			return err
		}
		return writeEscaped(buf, s, tmpl.outputMode)
	case *sectionElement:
		return tmpl.renderSection(elem, contextChain, buf)
	case *partialElement:
		partial, err := tmpl.parent.getPartial(elem.name, elem.indent)
		if err != nil {
			if tmpl.errorOnMissing {
				return err
			}
			return nil
		}
		return partial.renderTemplate(contextChain, buf)
	}
	return nil
}

func (tmpl *Template) renderTemplate(contextChain []interface{}, buf io.Writer) error {
	for _, elem := range tmpl.elems {
		if err := tmpl.renderElement(elem, contextChain, buf); err != nil {
			return err
		}
	}
	return nil
}

// Frender uses the given data source - generally a map or struct - to
// render the compiled template to an io.Writer.
func (tmpl *Template) Frender(out io.Writer, context ...interface{}) error {
	var contextChain []interface{}
	for _, c := range context {
		contextChain = append(contextChain, reflect.ValueOf(c))
	}
	return tmpl.renderTemplate(contextChain, out)
}

// Render uses the given data source - generally a map or struct - to render
// the compiled template and return the output.
func (tmpl *Template) Render(context ...interface{}) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Frender(&buf, context...)
	return buf.String(), err
}

// boundedWriter writes into a caller-supplied fixed-size buffer and reports
// ErrBufferTooSmall the moment a write would overflow it, instead of
// growing.
type boundedWriter struct {
	buf []byte
	n   int
}

func (w *boundedWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > len(w.buf) {
		return 0, ErrBufferTooSmall
	}
	copy(w.buf[w.n:], p)
	w.n += len(p)
	return len(p), nil
}

// RenderToBuffer renders the template into buf without allocating, returning
// the number of bytes written. It reports ErrBufferTooSmall if buf is too
// small to hold the result; the partial output already written into buf in
// that case should be discarded, since the caller has no way to know where
// in the template the overflow occurred.
func (tmpl *Template) RenderToBuffer(buf []byte, context ...interface{}) (int, error) {
	w := &boundedWriter{buf: buf}
	if err := tmpl.Frender(w, context...); err != nil {
		return 0, err
	}
	return w.n, nil
}

// RenderInLayout uses the given data source - generally a map or struct - to
// render the compiled template and layout "wrapper" template and return the
// output.
func (tmpl *Template) RenderInLayout(layout *Template, context ...interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.FRenderInLayout(&buf, layout, context...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FRenderInLayout uses the given data source - generally a map or struct -
// to render the compiled template and a layout "wrapper" template to an
// io.Writer. The rendered content is made available to the layout as
// {{content}}.
func (tmpl *Template) FRenderInLayout(out io.Writer, layout *Template, context ...interface{}) error {
	content, err := tmpl.Render(context...)
	if err != nil {
		return err
	}
	allContext := make([]interface{}, len(context)+1)
	copy(allContext[1:], context)
	allContext[0] = map[string]string{"content": content}
	return layout.Frender(out, allContext...)
}
