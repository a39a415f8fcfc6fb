package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

// TokenizeDirResult is the token stream of one script in a directory.
type TokenizeDirResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

// ParseDirResult is the parsed AST of one script in a directory. Each
// result owns its builder: per-file dumps need no shared interner, and
// independent builders keep the workers free of locking.
type ParseDirResult struct {
	Path    string
	FileID  ast.FileID
	Builder *ast.Builder
	Bag     *diag.Bag
}

// ListScripts returns every *.tup file under dir, sorted for
// deterministic order.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".tup") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// TokenizeDir tokenizes every script under dir in parallel.
func TokenizeDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// Loading mutates the FileSet, so it stays on this goroutine; the
	// workers below only read.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	results := make([]TokenizeDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = TokenizeDirResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			lx := lexer.New(fileSet.Get(fileID), lexer.Options{
				Reporter: diag.BagReporter{Bag: bag},
			})
			// Index i is unique per worker, no mutex needed.
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: collectTokens(lx),
				Bag:    bag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

// ParseDir parses every script under dir in parallel, one builder per
// file.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseDirResult, error) {
	files, err := ListScripts(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	results := make([]ParseDirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobLimit(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = ParseDirResult{Path: path, Bag: bag}
				return nil
			}

			builder := ast.NewBuilder(ast.Hints{})
			astFile, err := parseInto(fileSet, builder, fileIDs[path], bag, maxDiagnostics)
			if err != nil {
				return err
			}
			results[i] = ParseDirResult{
				Path:    path,
				FileID:  astFile,
				Builder: builder,
				Bag:     bag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

func jobLimit(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > files {
		jobs = files
	}
	return jobs
}
