package lexer

import (
	"fmt"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/token"
)

// scanOperatorOrPunct scans punctuation, longest match first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	mk := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.try2('=', '>') {
		return mk(token.FatArrow)
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '{':
		return mk(token.LBrace)
	case '}':
		return mk(token.RBrace)
	case ',':
		return mk(token.Comma)
	case ':':
		return mk(token.Colon)
	case '=':
		return mk(token.Assign)
	case '-':
		return mk(token.Minus)
	case '_':
		return mk(token.Underscore)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", b))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
