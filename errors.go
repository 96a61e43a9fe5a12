package mustache

import (
	"errors"
	"fmt"
)

// ErrBufferTooSmall is returned by (*Template).RenderToBuffer when the
// caller-supplied buffer cannot hold the rendered output. Any bytes already
// written to the buffer before the overflow was detected remain there; the
// render is not retried or rolled back.
var ErrBufferTooSmall = errors.New("mustache: buffer too small")

// ErrPartialNotFound is returned in strict mode (a Compiler built with
// WithErrors(true)) when a template uses a partial tag and no PartialProvider
// was configured. A PartialProvider reports a partial it cannot find as empty
// source, so such a partial renders as empty text in strict mode as well.
// Outside strict mode a partial tag with no provider also renders as empty
// text.
var ErrPartialNotFound = errors.New("mustache: partial not found")

// parseError reports a failure detected while scanning or parsing template
// source. line and col are 1-based; col exists for diagnostics only and
// never affects parsing decisions.
type parseError struct {
	line    int
	col     int
	message string
}

func (p parseError) Error() string {
	return fmt.Sprintf("line %d: %s", p.line, p.message)
}

func missingVariableError(name string) error {
	return fmt.Errorf("missing variable %q", name)
}

func partialNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrPartialNotFound, name)
}
