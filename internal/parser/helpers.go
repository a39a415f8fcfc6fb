package parser

import (
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan returns the best span for a diagnostic at the current position.
// At EOF the position right after the last consumed token reads better than
// an empty span at offset 0.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports and returns (Invalid, false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: p.lx.Peek().Text}, false
}

// err reports an error at the current position.
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev >= diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// eatComma consumes an optional comma, reporting whether one was present.
func (p *Parser) eatComma() bool {
	if p.at(token.Comma) {
		p.advance()
		return true
	}
	return false
}
