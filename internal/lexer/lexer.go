package lexer

import (
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '_':
		// A lone '_' is Underscore; '_x' is an ordinary identifier.
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '_' && isIdentContinueByte(b1) {
			tok = lx.scanIdentOrKeyword()
		} else {
			tok = lx.scanOperatorOrPunct()
		}

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if lx.opts.MaxTokenLen != 0 && tok.Span.Len() > lx.opts.MaxTokenLen {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token exceeds the allowed length")
		tok.Kind = token.Invalid
	}

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{
		File:  lx.file.ID,
		Start: lx.cursor.Off,
		End:   lx.cursor.Off,
	}
}

// skipTrivia consumes whitespace and '//' line comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			lx.cursor.Bump()
		case b == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' || b1 != '/' {
				return
			}
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}
