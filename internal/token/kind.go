package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Underscore represents a lone '_' (wildcard key / wildcard pattern).
	Underscore

	// KwTuple represents the 'tuple' keyword.
	KwTuple // tuple
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwShow represents the 'show' keyword.
	KwShow // show
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// NothingLit represents the 'nothing' literal.
	NothingLit // nothing
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit

	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// Comma represents ','.
	Comma // ,
	// Colon represents ':'.
	Colon // :
	// Assign represents '='.
	Assign // =
	// FatArrow represents '=>'.
	FatArrow // =>
	// Minus represents '-' (negative numeric literals).
	Minus // -
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	Underscore: "Underscore",
	KwTuple:    "tuple",
	KwPub:      "pub",
	KwLet:      "let",
	KwShow:     "show",
	KwMatch:    "match",
	KwTrue:     "true",
	KwFalse:    "false",
	NothingLit: "nothing",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	Comma:      ",",
	Colon:      ":",
	Assign:     "=",
	FatArrow:   "=>",
	Minus:      "-",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
