package catalog

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord matches every *MalformedRecordError via errors.Is.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a table row that cannot be turned into a
// typed record. Line is the 1-based line in the source file, 0 when the
// problem concerns the header.
type MalformedRecordError struct {
	Table  string
	Line   int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Table, ErrMalformedRecord)
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s, field %q", msg, e.Field)
	}
	return fmt.Sprintf("%s: %s", msg, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}
