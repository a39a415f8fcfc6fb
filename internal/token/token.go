package token

import (
	"github.com/wrachwal/deftuple/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, string or
// nothing literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NothingLit, IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwTuple, KwPub, KwLet, KwShow, KwMatch, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
