package driver

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/parser"
	"github.com/wrachwal/deftuple/internal/source"

	"fortio.org/safecast"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

// Parse lexes and parses a single script.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	builder := ast.NewBuilder(ast.Hints{})

	astFile, err := parseInto(fs, builder, fileID, bag, maxDiagnostics)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  astFile,
		Bag:     bag,
	}, nil
}

// parseInto parses one loaded file into a shared builder.
func parseInto(fs *source.FileSet, builder *ast.Builder, fileID source.FileID, bag *diag.Bag, maxDiagnostics int) (ast.FileID, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return ast.NoFileID, err
	}

	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	res := parser.ParseFile(fs, lx, builder, fileID, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors,
	})
	return res.File, nil
}
