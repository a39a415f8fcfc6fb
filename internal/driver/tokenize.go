package driver

import (
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes a single script to EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	tokens := collectTokens(lx)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

func collectTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}
