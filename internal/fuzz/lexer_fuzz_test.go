package fuzztests

import (
	"testing"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.tup", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}
