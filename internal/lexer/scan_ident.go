package lexer

import (
	"github.com/wrachwal/deftuple/internal/token"
)

// scanIdentOrKeyword scans an identifier and classifies it through
// LookupKeyword. Token.Text is exactly the source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.file.Content[sp.Start:sp.End]
	text := string(lex)

	if len(lex) == 1 && lex[0] == '_' {
		return token.Token{Kind: token.Underscore, Span: sp, Text: text}
	}

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
