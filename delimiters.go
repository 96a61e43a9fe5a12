package mustache

// delimiters is a (opening, closing) tag delimiter pair. The default pair is
// ("{{", "}}"); {{=a b=}} changes it for the remainder of the template (or
// until the next {{=...=}}). Unescaped-interpolation delimiters are always
// the regular pair plus a literal '{'/'}' (default "{{{"/"}}}") regardless of
// any custom delimiters in effect — Mustache fixes that sigil rather than
// letting {{=...=}} redefine it.
type delimiters struct {
	otag string
	ctag string
}

func defaultDelimiters() delimiters {
	return delimiters{otag: "{{", ctag: "}}"}
}
