package mustache

import "strconv"

// TagType represents the specific type of mustache tag that a Tag
// represents. The zero TagType is not a valid type.
type TagType uint

// The possible Tag types.
const (
	Invalid TagType = iota
	Variable
	Section
	InvertedSection
	Partial
)

func (t TagType) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "type" + strconv.Itoa(int(t))
}

var tagNames = []string{
	Invalid:         "Invalid",
	Variable:        "Variable",
	Section:         "Section",
	InvertedSection: "InvertedSection",
	Partial:         "Partial",
}

// Tag represents the different mustache tag types found in a compiled
// Template's element tree.
//
// Not all methods apply to all kinds of tags. Restrictions, if any, are
// noted in the documentation for each method. Use Type to find out the type
// of tag before calling type-specific methods; calling a method
// inappropriate to the type of tag causes a run time panic.
type Tag interface {
	// Type returns the type of the tag.
	Type() TagType
	// Name returns the name (dotted path) of the tag.
	Name() string
	// Tags returns any child tags. It panics for tag types which cannot
	// contain child tags (i.e. Variable).
	Tags() []Tag
}

// textElement is a literal run of source bytes, with standalone-line
// trimming already applied by the parser.
type textElement struct {
	text string
}

// varElement is {{name}}, {{{name}}}, or {{&name}}.
type varElement struct {
	name string
	raw  bool // true selects EscapeMode Raw regardless of the template's configured mode
}

// sectionElement is {{#name}}...{{/name}} or {{^name}}...{{/name}}.
type sectionElement struct {
	name      string
	inverted  bool
	startline int
	elems     []interface{}
	raw       string     // inner_source: exact text between the open and close tags, for lambda re-rendering
	delims    delimiters // delimiters in effect when the section opened
}

// partialElement is {{>name}}.
type partialElement struct {
	name   string
	indent string // whitespace that preceded the tag on its line, if the tag was standalone
}

func (e *varElement) Type() TagType { return Variable }
func (e *varElement) Name() string  { return e.name }
func (e *varElement) Tags() []Tag   { panic("mustache: Tags on Variable type") }

func (e *sectionElement) Type() TagType {
	if e.inverted {
		return InvertedSection
	}
	return Section
}
func (e *sectionElement) Name() string { return e.name }
func (e *sectionElement) Tags() []Tag  { return extractTags(e.elems) }

func (e *partialElement) Type() TagType { return Partial }
func (e *partialElement) Name() string  { return e.name }
func (e *partialElement) Tags() []Tag   { return nil }

func extractTags(elems []interface{}) []Tag {
	tags := make([]Tag, 0, len(elems))
	for _, elem := range elems {
		switch elem := elem.(type) {
		case *varElement:
			tags = append(tags, elem)
		case *sectionElement:
			tags = append(tags, elem)
		case *partialElement:
			tags = append(tags, elem)
		}
	}
	return tags
}

// Tags returns the top-level mustache tags of the compiled template.
func (tmpl *Template) Tags() []Tag {
	return extractTags(tmpl.elems)
}
