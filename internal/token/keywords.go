package token

var keywords = map[string]Kind{
	"tuple":   KwTuple,
	"pub":     KwPub,
	"let":     KwLet,
	"show":    KwShow,
	"match":   KwMatch,
	"true":    KwTrue,
	"false":   KwFalse,
	"nothing": NothingLit,
}

// LookupKeyword reports whether ident is a keyword and returns its kind.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
