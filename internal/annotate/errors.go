package annotate

import "fmt"

// MissingFieldError reports a record that needs annotating but lacks the
// name field.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d: missing field %q", e.Index, e.Field)
}

// FieldTypeError reports a note or name field holding a non-string value.
type FieldTypeError struct {
	Index int
	Field string
	Got   string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("record %d: field %q is %s, want string", e.Index, e.Field, e.Got)
}

// RecordTypeError reports a document element that is not an object.
type RecordTypeError struct {
	Index int
	Got   string
}

func (e *RecordTypeError) Error() string {
	return fmt.Sprintf("record %d: is %s, want object", e.Index, e.Got)
}
