package fuzztests

import (
	"testing"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/expand"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/parser"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/testkit"
)

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.tup", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		builder := ast.NewBuilder(ast.Hints{})
		result := parser.ParseFile(fs, lx, builder, fileID, parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		})

		if err := testkit.CheckSpanInvariants(builder, result.File, file); err != nil {
			t.Fatalf("span invariants violated: %v", err)
		}
	})
}

// FuzzExpandPipeline drives arbitrary input through the whole front:
// lex, parse, and expand. Expansion must never panic, no matter how
// mangled the AST recovery left things.
func FuzzExpandPipeline(f *testing.F) {
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

		bag := diag.NewBag(128)
		reporter := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: reporter})

		builder := ast.NewBuilder(ast.Hints{})
		result := parser.ParseFile(fs, lx, builder, fileID, parser.Options{
			Reporter:  reporter,
			MaxErrors: 128,
		})

		_ = expand.Expand(builder, []ast.FileID{result.File}, reporter)
	})
}
