package mustache

import "io"

// Template represents a compiled mustache template. It is safe to share a
// *Template across goroutines and render it concurrently: rendering never
// mutates the template.
type Template struct {
	data    string
	otag    string
	ctag    string
	p       int
	curline int
	curcol  int
	elems   []interface{}

	partial        PartialProvider
	outputMode     EscapeMode
	valueStringer  ValueStringer
	errorOnMissing bool
	parent         *Compiler
}

// parsePartial builds the partialElement for a {{>name}} tag. indent is the
// whitespace that preceded the tag on its own line when the tag is
// standalone, or "" otherwise — only a standalone partial inherits
// indentation (a partial tag embedded mid-line has nothing to inherit).
func (tmpl *Template) parsePartial(name, indent string) *partialElement {
	return &partialElement{name: name, indent: indent}
}

// parseSection parses the body of an already-opened {{#name}}/{{^name}}
// section up to (and including, for bookkeeping purposes) its matching
// {{/name}}, recursing for nested sections.
func (tmpl *Template) parseSection(section *sectionElement) error {
	start := tmpl.p
	for {
		textResult, err := tmpl.readText()
		if err == io.EOF {
			return parseError{section.startline, tmpl.curcol, "Section " + section.name + " has no closing tag"}
		}
		closeTagOtagPos := tmpl.p - len(tmpl.otag)

		section.elems = append(section.elems, &textElement{textResult.text})

		tagResult, err := tmpl.readTag(textResult.mayStandalone)
		if err != nil {
			return err
		}
		if !tagResult.standalone {
			section.elems = append(section.elems, &textElement{textResult.padding})
		}

		ct, err := classifyTag(tagResult.tag, tagResult.raw)
		if err != nil {
			return tmpl.classifyErrToParseErr(err)
		}

		switch ct.kind {
		case partComment:
			// elides its own line when standalone; contributes nothing
		case partSection, partInvertedSection:
			child := &sectionElement{
				name:      ct.name,
				inverted:  ct.kind == partInvertedSection,
				startline: tmpl.curline,
				delims:    delimiters{tmpl.otag, tmpl.ctag},
			}
			if err := tmpl.parseSection(child); err != nil {
				return err
			}
			section.elems = append(section.elems, child)
		case partCloseSection:
			if ct.name != section.name {
				return parseError{tmpl.curline, tmpl.curcol, "interleaved closing tag: " + ct.name}
			}
			section.raw = tmpl.data[start:closeTagOtagPos]
			return nil
		case partPartial:
			indent := ""
			if tagResult.standalone {
				indent = textResult.padding
			}
			section.elems = append(section.elems, tmpl.parsePartial(ct.name, indent))
		case partDelimChange:
			tmpl.otag, tmpl.ctag = ct.otag, ct.ctag
		case partInheritance:
			return parseError{tmpl.curline, tmpl.curcol, "template inheritance is not implemented: {{" + tagLeadChar(tagResult) + ct.name + "}}"}
		case partUnescapedVariable:
			section.elems = append(section.elems, &varElement{name: ct.name, raw: true})
		default: // partVariable
			section.elems = append(section.elems, &varElement{name: ct.name, raw: false})
		}
	}
}

// parse parses the root of a template: a flat run of text and tags with no
// enclosing section.
func (tmpl *Template) parse() error {
	for {
		textResult, err := tmpl.readText()
		if err == io.EOF {
			tmpl.elems = append(tmpl.elems, &textElement{textResult.text})
			return nil
		}

		tmpl.elems = append(tmpl.elems, &textElement{textResult.text})

		tagResult, err := tmpl.readTag(textResult.mayStandalone)
		if err != nil {
			return err
		}
		if !tagResult.standalone {
			tmpl.elems = append(tmpl.elems, &textElement{textResult.padding})
		}

		ct, err := classifyTag(tagResult.tag, tagResult.raw)
		if err != nil {
			return tmpl.classifyErrToParseErr(err)
		}

		switch ct.kind {
		case partComment:
		case partSection, partInvertedSection:
			child := &sectionElement{
				name:      ct.name,
				inverted:  ct.kind == partInvertedSection,
				startline: tmpl.curline,
				delims:    delimiters{tmpl.otag, tmpl.ctag},
			}
			if err := tmpl.parseSection(child); err != nil {
				return err
			}
			tmpl.elems = append(tmpl.elems, child)
		case partCloseSection:
			return parseError{tmpl.curline, tmpl.curcol, "unmatched close tag"}
		case partPartial:
			indent := ""
			if tagResult.standalone {
				indent = textResult.padding
			}
			tmpl.elems = append(tmpl.elems, tmpl.parsePartial(ct.name, indent))
		case partDelimChange:
			tmpl.otag, tmpl.ctag = ct.otag, ct.ctag
		case partInheritance:
			return parseError{tmpl.curline, tmpl.curcol, "template inheritance is not implemented: {{" + tagLeadChar(tagResult) + ct.name + "}}"}
		case partUnescapedVariable:
			tmpl.elems = append(tmpl.elems, &varElement{name: ct.name, raw: true})
		default: // partVariable
			tmpl.elems = append(tmpl.elems, &varElement{name: ct.name, raw: false})
		}
	}
}

func (tmpl *Template) classifyErrToParseErr(err error) error {
	return parseError{tmpl.curline, tmpl.curcol, err.Error()}
}

func tagLeadChar(t *tagReadingResult) string {
	if len(t.tag) == 0 {
		return ""
	}
	return string(t.tag[0])
}
