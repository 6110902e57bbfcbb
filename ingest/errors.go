package ingest

import (
	"errors"
	"fmt"
)

// StructuralParseError reports a malformed document. It is fatal to the
// document being ingested: the whole parse is abandoned and no partial
// graph escapes. Line and column are 1-based where the codec reports them,
// zero otherwise.
type StructuralParseError struct {
	Path   string
	Line   int
	Column int
	Text   string
	Err    error
}

func (e *StructuralParseError) Error() string {
	msg := fmt.Sprintf("%s:%d:%d: structural parse error", e.Path, e.Line, e.Column)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Text != "" {
		msg += fmt.Sprintf(" (near %q)", e.Text)
	}
	return msg
}

func (e *StructuralParseError) Unwrap() error { return e.Err }

// ImportError reports a failed import fetch. It is non-fatal: the resolver
// logs it, skips the import, and the importing document keeps ingesting.
type ImportError struct {
	URI     string
	Timeout bool
	Err     error
}

func (e *ImportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("import %s: fetch timed out: %v", e.URI, e.Err)
	}
	return fmt.Sprintf("import %s: fetch failed: %v", e.URI, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ErrUnknownFormat is returned when no registered ingestor recognizes a
// document.
var ErrUnknownFormat = errors.New("no ingestor recognizes this document format")
