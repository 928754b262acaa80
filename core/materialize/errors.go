package materialize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFieldMismatch means a record's field names differ from the
	// fields declared by the target type.
	ErrFieldMismatch = errors.New("record fields do not match declared fields")
	// ErrFieldType means a value cannot be held by the declared field type.
	ErrFieldType = errors.New("record value does not fit declared field")
)

// FieldMismatchError lists the names that made a record unusable for a type.
type FieldMismatchError struct {
	Type       string
	Row        int
	Missing    []string
	Unexpected []string
}

func (e *FieldMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Unexpected, ", "))
	}
	return fmt.Sprintf("%s: %s row %d: %s", ErrFieldMismatch, e.Type, e.Row, strings.Join(parts, "; "))
}

func (e *FieldMismatchError) Is(target error) bool {
	return target == ErrFieldMismatch
}

// FieldTypeError reports the value that did not fit.
type FieldTypeError struct {
	Type  string
	Row   int
	Field string
	Value any
	Want  string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("%s: %s row %d: field %s: cannot hold %T %v as %s", ErrFieldType, e.Type, e.Row, e.Field, e.Value, e.Value, e.Want)
}

func (e *FieldTypeError) Is(target error) bool {
	return target == ErrFieldType
}
