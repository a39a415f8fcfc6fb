// Package diagfmt renders diagnostics and token dumps for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
)

// Pretty formats diagnostics for humans. Expects bag.Sort() to have run.
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <sev> <CODE>: <message>
//
// followed, when ShowSource is set, by the offending line and a ^~~~
// underline, then notes in the same layout.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, severityLabel(d.Severity, opts.Color),
			codeLabel(d.Code, opts.Color), d.Message, opts)
		if opts.ShowSource {
			writeSourceLine(w, fs, d.Primary)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeHeading(w, fs, n.Span, "NOTE", "", n.Msg, opts)
				if opts.ShowSource {
					writeSourceLine(w, fs, n.Span)
				}
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, sp source.Span, sev, code, msg string, opts PrettyOpts) {
	if loc, ok := location(fs, sp, opts.PathMode); ok {
		fmt.Fprintf(w, "%s: ", loc)
	}
	if code != "" {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, msg)
	} else {
		fmt.Fprintf(w, "%s: %s\n", sev, msg)
	}
}

// location renders path:line:col, or reports false for spanless
// diagnostics (manifest errors, I/O failures).
func location(fs *source.FileSet, sp source.Span, mode PathMode) (string, bool) {
	if fs == nil || sp == (source.Span{}) || int(sp.File) >= fs.Len() {
		return "", false
	}
	start, _ := fs.Resolve(sp)
	path := displayPath(fs.Get(sp.File).Path, mode)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col), true
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}

// writeSourceLine prints the first line the span touches with a caret
// underline beneath the spanned columns. Width math runs through
// runewidth so wide runes keep the carets aligned.
func writeSourceLine(w io.Writer, fs *source.FileSet, sp source.Span) {
	if fs == nil || sp == (source.Span{}) || int(sp.File) >= fs.Len() {
		return
	}
	start, end := fs.Resolve(sp)
	line := fs.LineContent(sp.File, start.Line)
	if line == nil {
		return
	}
	text := strings.ReplaceAll(string(line), "\t", "    ")
	fmt.Fprintf(w, "    %s\n", text)

	startCol := int(start.Col)
	endCol := int(end.Col)
	if end.Line != start.Line || endCol < startCol {
		endCol = len([]rune(string(line))) + 1
	}
	prefix := runewidth.StringWidth(expandTabs(string(line), startCol-1))
	span := runewidth.StringWidth(substring(string(line), startCol-1, endCol-1))
	if span < 1 {
		span = 1
	}
	fmt.Fprintf(w, "    %s^%s\n", strings.Repeat(" ", prefix), strings.Repeat("~", span-1))
}

func expandTabs(s string, runes int) string {
	return strings.ReplaceAll(substring(s, 0, runes), "\t", "    ")
}

// substring slices by rune offsets, clamped to the string.
func substring(s string, from, to int) string {
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

func severityLabel(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(sev.String())
	default:
		return color.New(color.FgCyan).Sprint(sev.String())
	}
}

func codeLabel(code diag.Code, colored bool) string {
	if !colored {
		return code.ID()
	}
	return color.New(color.Bold).Sprint(code.ID())
}
