package lexer

import (
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
)

type Options struct {
	// Reporter may be nil; lexing continues either way.
	Reporter diag.Reporter
	// MaxTokenLen caps a single token's byte length; 0 means no limit.
	MaxTokenLen uint32
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
