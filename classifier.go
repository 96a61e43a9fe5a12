package mustache

import "strings"

// partType is the classifier's verdict for a single tag body, distinct from
// the public TagType: it also covers parts (comments, delimiter changes,
// close tags) that never become elements of their own in the tree.
type partType int

const (
	partVariable partType = iota
	partUnescapedVariable
	partSection
	partInvertedSection
	partCloseSection
	partComment
	partPartial
	partDelimChange
	partInheritance // {{<...}} / {{$...}} — recognized, rejected by the parser
)

// classifiedTag is the classifier's output for one {{...}} body: its kind,
// the (sigil-stripped, trimmed) path or payload, and for partDelimChange the
// parsed replacement delimiters.
type classifiedTag struct {
	kind  partType
	name  string // dotted path for variable/section/partial tags
	otag  string // only set for partDelimChange
	ctag  string // only set for partDelimChange
}

// classifyTag inspects a trimmed, non-empty tag body (with the triple-mustache
// unescape wrapper, if any, already peeled off by the caller) and returns its
// part type and payload. tripleMustache is true when the body came from a {{{...}}}
// (triple-mustache) tag, forcing partUnescapedVariable.
func classifyTag(tag string, tripleMustache bool) (classifiedTag, error) {
	if tripleMustache {
		return namedPathTag(partUnescapedVariable, tag)
	}
	if len(tag) == 0 {
		return classifiedTag{}, errEmptyTag
	}
	switch tag[0] {
	case '!':
		return classifiedTag{kind: partComment}, nil
	case '#':
		return namedPathTag(partSection, tag[1:])
	case '^':
		return namedPathTag(partInvertedSection, tag[1:])
	case '/':
		return namedSimpleTag(partCloseSection, tag[1:])
	case '>':
		return namedSimpleTag(partPartial, tag[1:])
	case '<', '$':
		return classifiedTag{kind: partInheritance, name: strings.TrimSpace(tag[1:])}, nil
	case '&':
		return namedPathTag(partUnescapedVariable, tag[1:])
	case '=':
		if len(tag) < 2 || tag[len(tag)-1] != '=' {
			return classifiedTag{}, errInvalidDelimiters
		}
		inner := strings.TrimSpace(tag[1 : len(tag)-1])
		parts := strings.SplitN(inner, " ", 2)
		if len(parts) != 2 || parts[0] == "" || strings.TrimSpace(parts[1]) == "" {
			return classifiedTag{}, errInvalidDelimiters
		}
		return classifiedTag{kind: partDelimChange, otag: parts[0], ctag: strings.TrimSpace(parts[1])}, nil
	default:
		return namedPathTag(partVariable, tag)
	}
}

// namedPathTag trims raw to a dotted context-lookup path (a variable or
// section name) and validates it: the path must be non-empty and, unless it
// is exactly ".", must have no empty segment, so "", "a..b", and ".foo" are
// all rejected as an invalid identifier rather than silently resolving to
// nothing.
func namedPathTag(kind partType, raw string) (classifiedTag, error) {
	name := strings.TrimSpace(raw)
	if !validPath(name) {
		return classifiedTag{}, errEmptyTag
	}
	return classifiedTag{kind: kind, name: name}, nil
}

// namedSimpleTag trims raw to a close-tag or partial name and validates only
// that it is non-empty. Unlike a context-lookup path, a partial name is an
// opaque file-system-style identifier that may legitimately contain any
// number of dots (e.g. a traversal attempt a PartialProvider is expected to
// reject on its own terms), so no segment validation is applied here.
func namedSimpleTag(kind partType, raw string) (classifiedTag, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return classifiedTag{}, errEmptyTag
	}
	return classifiedTag{kind: kind, name: name}, nil
}

func validPath(name string) bool {
	if name == "" {
		return false
	}
	if name == "." {
		return true
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// errEmptyTag / errInvalidDelimiters are sentinel causes wrapped by the
// parser into a parseError carrying the offending line. errEmptyTag also
// covers the InvalidIdentifier case of a present but empty or
// internally-empty dotted path (e.g. "{{#}}" or "{{a..b}}"), matching the
// message the empty-tag case already uses.
var (
	errEmptyTag          = classifyError("empty tag")
	errInvalidDelimiters = classifyError("invalid meta tag")
)

type classifyError string

func (e classifyError) Error() string { return string(e) }
