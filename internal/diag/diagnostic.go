package diag

import (
	"github.com/wrachwal/deftuple/internal/source"
)

// Note is a secondary span/message pair giving extra context.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central record produced by every pipeline phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New constructs a diagnostic with the given severity.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError constructs an error-severity diagnostic.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of the diagnostic with an extra note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
