package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
)

type jsonPosition struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonNote struct {
	Message string        `json:"message"`
	Path    string        `json:"path,omitempty"`
	Start   *jsonPosition `json:"start,omitempty"`
}

type jsonDiagnostic struct {
	Code     string        `json:"code"`
	Severity string        `json:"severity"`
	Message  string        `json:"message"`
	Path     string        `json:"path,omitempty"`
	Start    *jsonPosition `json:"start,omitempty"`
	End      *jsonPosition `json:"end,omitempty"`
	Notes    []jsonNote    `json:"notes,omitempty"`
}

type jsonReport struct {
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
	Truncated   bool             `json:"truncated,omitempty"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// JSON renders the bag as a single machine-readable report object.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	report := jsonReport{Diagnostics: []jsonDiagnostic{}}
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			report.Errors++
		case diag.SevWarning:
			report.Warnings++
		}
		if opts.Max > 0 && len(report.Diagnostics) >= opts.Max {
			report.Truncated = true
			continue
		}
		jd := jsonDiagnostic{
			Code:     d.Code.ID(),
			Severity: d.Severity.String(),
			Message:  d.Message,
		}
		if path, start, end, ok := jsonLocation(fs, d.Primary, opts); ok {
			jd.Path = path
			jd.Start = start
			jd.End = end
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				jn := jsonNote{Message: n.Msg}
				if path, start, _, ok := jsonLocation(fs, n.Span, opts); ok {
					jn.Path = path
					jn.Start = start
				}
				jd.Notes = append(jd.Notes, jn)
			}
		}
		report.Diagnostics = append(report.Diagnostics, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func jsonLocation(fs *source.FileSet, sp source.Span, opts JSONOpts) (string, *jsonPosition, *jsonPosition, bool) {
	if fs == nil || sp == (source.Span{}) || int(sp.File) >= fs.Len() {
		return "", nil, nil, false
	}
	path := displayPath(fs.Get(sp.File).Path, opts.PathMode)
	if !opts.IncludePositions {
		return path, nil, nil, true
	}
	start, end := fs.Resolve(sp)
	return path,
		&jsonPosition{Line: start.Line, Col: start.Col},
		&jsonPosition{Line: end.Line, Col: end.Col},
		true
}
