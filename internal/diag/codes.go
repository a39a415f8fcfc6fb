package diag

import (
	"fmt"
)

// Code is a compact numeric identifier with a stable string form.
// Lexical codes live in the 1000s, syntactic in the 2000s, expansion
// (tuple generation) in the 3000s, IO/project in the 4000s.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexTokenTooLong       Code = 1004

	// Syntactic
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectLParen       Code = 2004
	SynExpectRParen       Code = 2005
	SynExpectRBrace       Code = 2006
	SynExpectColon        Code = 2007
	SynExpectAssign       Code = 2008
	SynExpectFatArrow     Code = 2009
	SynExpectExpr         Code = 2010
	SynEmptyMatch         Code = 2011

	// Expansion (tuple operation generation)
	ExpInfo                 Code = 3000
	ExpNonAtomFieldName     Code = 3001
	ExpInvalidDefaultValue  Code = 3002
	ExpDuplicateField       Code = 3003
	ExpUnknownShape         Code = 3004
	ExpUnknownField         Code = 3005
	ExpInvalidArgumentShape Code = 3006
	ExpUpdateInMatchContext Code = 3007
	ExpBadPattern           Code = 3008
	ExpDuplicateShape       Code = 3009

	// IO / project
	IOFileNotFound    Code = 4001
	IOLoadFileError   Code = 4002
	PrjManifestBroken Code = 4101

	// Observability
	ObsTimings Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInfo:               "lexical info",
	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadNumber:          "malformed numeric literal",
	LexTokenTooLong:       "token exceeds the allowed length",

	SynInfo:               "syntactic info",
	SynUnexpectedToken:    "unexpected token",
	SynUnexpectedTopLevel: "unexpected top-level construct",
	SynExpectIdentifier:   "identifier expected",
	SynExpectLParen:       "'(' expected",
	SynExpectRParen:       "')' expected",
	SynExpectRBrace:       "'}' expected",
	SynExpectColon:        "':' expected",
	SynExpectAssign:       "'=' expected",
	SynExpectFatArrow:     "'=>' expected",
	SynExpectExpr:         "expression expected",
	SynEmptyMatch:         "match without arms",

	ExpInfo:                 "expansion info",
	ExpNonAtomFieldName:     "field name is not an identifier",
	ExpInvalidDefaultValue:  "field default is not a representable value",
	ExpDuplicateField:       "duplicate field name in tuple definition",
	ExpUnknownShape:         "unknown tuple shape",
	ExpUnknownField:         "unknown field",
	ExpInvalidArgumentShape: "invalid argument shape",
	ExpUpdateInMatchContext: "tuple update inside match pattern",
	ExpBadPattern:           "invalid pattern",
	ExpDuplicateShape:       "tuple shape already defined",

	IOFileNotFound:    "file not found",
	IOLoadFileError:   "file cannot be loaded",
	PrjManifestBroken: "project manifest cannot be read",

	ObsTimings: "pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
