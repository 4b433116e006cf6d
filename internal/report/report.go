// Package report turns a run outcome into the single line shown to the user.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"facultynotes/internal/docstore"
)

// Kind classifies how a run ended.
type Kind int

// Run outcome kinds. KindNone is a successful run; the others map to the
// three user-facing error messages.
const (
	KindNone Kind = iota
	KindNotFound
	KindMalformed
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed"
	default:
		return "unexpected"
	}
}

// Classify maps a run error to its Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, docstore.ErrNotFound):
		return KindNotFound
	case errors.Is(err, docstore.ErrMalformed):
		return KindMalformed
	default:
		return KindUnexpected
	}
}

// Message renders the user-facing line without styling.
func Message(kind Kind, path string, err error) string {
	switch kind {
	case KindNone:
		return fmt.Sprintf("File '%s' has been updated successfully.", path)
	case KindNotFound:
		return fmt.Sprintf("Error: The file '%s' was not found.", path)
	case KindMalformed:
		return fmt.Sprintf("Error: Could not decode JSON from the file '%s'.", path)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

// Reporter writes result lines. Colors are dropped when out is not a terminal.
type Reporter struct {
	out     io.Writer
	success lipgloss.Style
	failure lipgloss.Style
}

// New creates a reporter writing to out.
func New(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Reporter{
		out:     out,
		success: base.Foreground(lipgloss.Color("10")),
		failure: base.Foreground(lipgloss.Color("9")),
	}
}

// Success reports that the document was written to path.
func (r *Reporter) Success(path string) {
	fmt.Fprintln(r.out, r.success.Render(Message(KindNone, path, nil)))
}

// Failure reports err against the input path and returns its Kind.
func (r *Reporter) Failure(path string, err error) Kind {
	kind := Classify(err)
	fmt.Fprintln(r.out, r.failure.Render(Message(kind, path, err)))
	return kind
}
