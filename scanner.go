package mustache

import "io"

// readString scans forward from the current cursor until it finds s,
// returning everything up to and including the match and advancing the
// cursor past it. If s is never found, it returns the remaining tail and
// io.EOF. Row/column bookkeeping (tmpl.curline/tmpl.curcol) is updated to
// reflect every byte consumed, so a parse error raised after this call
// reports the position where the scan stopped.
func (tmpl *Template) readString(s string) (string, error) {
	newlines := 0
	lastNL := -1
	for i := tmpl.p; ; i++ {
		if i+len(s) > len(tmpl.data) {
			for ; i < len(tmpl.data); i++ {
				if tmpl.data[i] == '\n' {
					newlines++
					lastNL = i
				}
			}
			tmpl.advancePos(tmpl.data[tmpl.p:], newlines, lastNL)
			tail := tmpl.data[tmpl.p:]
			tmpl.p = len(tmpl.data)
			return tail, io.EOF
		}

		if tmpl.data[i] == '\n' {
			newlines++
			lastNL = i
		}

		if tmpl.data[i] != s[0] {
			continue
		}

		match := true
		for j := 1; j < len(s); j++ {
			if s[j] != tmpl.data[i+j] {
				match = false
				break
			}
		}

		if match {
			e := i + len(s)
			text := tmpl.data[tmpl.p:e]
			tmpl.advancePos(text, newlines, lastNL)
			tmpl.p = e
			return text, nil
		}
	}
}

// advancePos updates curline/curcol given a chunk of source that was just
// consumed, the number of newlines it contained, and the index (relative to
// the start of tmpl.data) of the last of those newlines.
func (tmpl *Template) advancePos(consumed string, newlines int, lastNLIndex int) {
	if newlines == 0 {
		tmpl.curcol += len(consumed)
		return
	}
	tmpl.curline += newlines
	tmpl.curcol = (tmpl.p + len(consumed)) - (lastNLIndex + 1)
}

// textReadingResult is the outcome of scanning plain text up to the next
// opening delimiter, including the lookback needed to decide whether the
// following tag might be standalone.
type textReadingResult struct {
	text          string
	padding       string // leading whitespace of the tag's line, held back pending the standalone decision
	mayStandalone bool
}

// readText reads plain text up to the next opening delimiter (or EOF) and
// looks backward from that point to see whether everything since the start
// of the line has been horizontal whitespace — the first half of the
// standalone-line test (the second half, looking forward past the tag,
// happens in readTag).
func (tmpl *Template) readText() (*textReadingResult, error) {
	pPrev := tmpl.p
	text, err := tmpl.readString(tmpl.otag)
	if err == io.EOF {
		return &textReadingResult{text: text, mayStandalone: false}, err
	}

	var i int
	for i = tmpl.p - len(tmpl.otag); i > pPrev; i-- {
		if tmpl.data[i-1] != ' ' && tmpl.data[i-1] != '\t' {
			break
		}
	}

	mayStandalone := i == 0 || tmpl.data[i-1] == '\n'

	if mayStandalone {
		return &textReadingResult{
			text:          tmpl.data[pPrev:i],
			padding:       tmpl.data[i : tmpl.p-len(tmpl.otag)],
			mayStandalone: true,
		}, nil
	}

	return &textReadingResult{
		text: tmpl.data[pPrev : tmpl.p-len(tmpl.otag)],
	}, nil
}

// tagReadingResult is the outcome of scanning a tag body up to its closing
// delimiter, plus whether the whole tag turned out to be standalone.
type tagReadingResult struct {
	tag        string
	raw        bool // true if this used the triple-mustache "}"+ctag close
	standalone bool
}

// skipWhitespaceTagSigils lists the sigils of tags that are standalone-line
// eligible: comments, sections (open/close/inverted), partials, delimiter
// changes, and inheritance tags. Interpolation tags (no sigil, or '&'/'{')
// are never standalone.
const skipWhitespaceTagSigils = "#^/<$>=!"

// readTag reads a tag body up to its closing delimiter and determines
// whether it is standalone: eligible by sigil, alone on its line, and
// followed by a newline or EOF. mayStandalone carries the result of the
// backward-looking half of the test performed by readText.
func (tmpl *Template) readTag(mayStandalone bool) (*tagReadingResult, error) {
	var text string
	var err error
	raw := tmpl.p < len(tmpl.data) && tmpl.data[tmpl.p] == '{'
	if raw {
		text, err = tmpl.readString("}" + tmpl.ctag)
	} else {
		text, err = tmpl.readString(tmpl.ctag)
	}

	if err == io.EOF {
		return nil, parseError{tmpl.curline, tmpl.curcol, "unmatched open tag"}
	}

	closeLen := len(tmpl.ctag)
	if raw {
		closeLen++
	}
	body := text[:len(text)-closeLen]
	if raw {
		body = body[1:] // the '{' that opened the triple mustache
	}
	tag := trimASCIISpace(body)
	if len(tag) == 0 {
		return nil, parseError{tmpl.curline, tmpl.curcol, "empty tag"}
	}

	eow := tmpl.p
	for i := tmpl.p; i < len(tmpl.data); i++ {
		if tmpl.data[i] != ' ' && tmpl.data[i] != '\t' {
			eow = i
			break
		}
		eow = i + 1
	}

	standalone := true
	if mayStandalone && !raw {
		if !containsByte(skipWhitespaceTagSigils, tag[0]) {
			standalone = false
		} else if eow == len(tmpl.data) {
			tmpl.p = eow
		} else if tmpl.data[eow] == '\n' {
			tmpl.p = eow + 1
			tmpl.curline++
			tmpl.curcol = 0
		} else if eow+1 < len(tmpl.data) && tmpl.data[eow] == '\r' && tmpl.data[eow+1] == '\n' {
			tmpl.p = eow + 2
			tmpl.curline++
			tmpl.curcol = 0
		} else {
			standalone = false
		}
	} else {
		standalone = false
	}

	return &tagReadingResult{tag: tag, raw: raw, standalone: standalone}, nil
}

func trimASCIISpace(s string) string {
	start := 0
	for start < len(s) && isASCIISpace(s[start]) {
		start++
	}
	end := len(s)
	for end > start && isASCIISpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}
