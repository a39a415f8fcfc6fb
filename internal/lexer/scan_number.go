package lexer

import (
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/token"
)

// scanNumber scans decimal integers and floats:
// [0-9][0-9_]* (opt .[0-9_]+) (opt [eE][+-]?[0-9_]+).
// Malformed forms are reported and emitted as Invalid so the parser can
// resynchronize on something concrete.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// Fraction. A '.' not followed by a digit is not ours.
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// Exponent.
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit in exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// A number running straight into an identifier is malformed ("1x").
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "malformed numeric literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
