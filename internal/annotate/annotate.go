// Package annotate appends a record's cleaned note to its display name.
//
// For every record whose note field trims to at least one non-empty
// comma-separated part, the name field becomes "<name> (<parts>)". Records are
// processed in order and mutated in place. The transform is not idempotent:
// running it over its own output appends the note again.
package annotate

import (
	"context"

	"go.uber.org/zap"

	"facultynotes/internal/record"
)

const (
	// DefaultNoteField holds the free-text note ("qeyd").
	DefaultNoteField = "qeyd"
	// DefaultNameField holds the faculty display name ("Fakulte adi").
	DefaultNameField = "Fakulte adi"
	// DefaultSeparator joins cleaned note parts.
	DefaultSeparator = ", "
)

// Options selects the fields the annotator reads and writes.
type Options struct {
	NoteField string
	NameField string
	Separator string
}

// DefaultOptions returns the field names used by the admissions data files.
func DefaultOptions() Options {
	return Options{
		NoteField: DefaultNoteField,
		NameField: DefaultNameField,
		Separator: DefaultSeparator,
	}
}

func (o Options) withDefaults() Options {
	if o.NoteField == "" {
		o.NoteField = DefaultNoteField
	}
	if o.NameField == "" {
		o.NameField = DefaultNameField
	}
	if o.Separator == "" {
		o.Separator = DefaultSeparator
	}
	return o
}

// Result counts what Apply did.
type Result struct {
	Records   int
	Annotated int
	Skipped   int
}

// Annotator rewrites name fields of a document.
type Annotator struct {
	opts   Options
	logger *zap.Logger
}

// New creates an annotator. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{opts: opts.withDefaults(), logger: logger}
}

// Apply annotates doc in place. The first failing record aborts the pass;
// records before it have already been mutated, so callers must not persist a
// document after an error.
func (a *Annotator) Apply(ctx context.Context, doc record.Document) (Result, error) {
	res := Result{Records: len(doc)}
	for i, item := range doc {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		changed, err := a.applyOne(i, item)
		if err != nil {
			return res, err
		}
		if changed {
			res.Annotated++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

func (a *Annotator) applyOne(i int, item any) (bool, error) {
	obj, ok := item.(*record.Object)
	if !ok {
		return false, &RecordTypeError{Index: i, Got: record.TypeName(item)}
	}

	var note string
	if raw, present := obj.Get(a.opts.NoteField); present {
		s, ok := raw.(string)
		if !ok {
			return false, &FieldTypeError{Index: i, Field: a.opts.NoteField, Got: record.TypeName(raw)}
		}
		note = s
	}

	cleaned := CleanNote(note, a.opts.Separator)
	if cleaned == "" {
		return false, nil
	}

	raw, present := obj.Get(a.opts.NameField)
	if !present {
		return false, &MissingFieldError{Index: i, Field: a.opts.NameField}
	}
	name, ok := raw.(string)
	if !ok {
		return false, &FieldTypeError{Index: i, Field: a.opts.NameField, Got: record.TypeName(raw)}
	}

	annotated := name + " (" + cleaned + ")"
	obj.Set(a.opts.NameField, annotated)
	a.logger.Debug("record annotated",
		zap.Int("index", i),
		zap.String("note", cleaned),
		zap.String("name", annotated))
	return true, nil
}
