package diag

import "github.com/wrachwal/deftuple/internal/source"

// Reporter is the minimal contract for phases that emit diagnostics.
// Implementations: BagReporter (stores into a Bag), NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter stores reported diagnostics into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter discards every diagnostic.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// Error is a shorthand for reporting an error without notes.
func Error(r Reporter, code Code, primary source.Span, msg string) {
	if r == nil {
		return
	}
	r.Report(code, SevError, primary, msg, nil)
}
