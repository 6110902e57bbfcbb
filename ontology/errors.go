package ontology

import (
	"errors"
	"fmt"
)

// ErrStaleHandle is returned when a Term handle is dereferenced after its
// ontology was discarded or its record was removed. The handle never
// resurrects state; callers must re-resolve the id.
var ErrStaleHandle = errors.New("stale term handle: record or ontology is gone")

// ErrIDImmutable is returned by any attempt to reassign an entity id.
var ErrIDImmutable = errors.New("entity id is immutable")

// ValidationError reports a field assignment that violates an ontology
// invariant. It is fatal to the one call that triggered it.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
