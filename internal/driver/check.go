package driver

import (
	"sort"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/expand"
	"github.com/wrachwal/deftuple/internal/observ"
	"github.com/wrachwal/deftuple/internal/shape"
	"github.com/wrachwal/deftuple/internal/source"
)

type CheckOptions struct {
	MaxDiagnostics int
	// Cache short-circuits a check whose scripts all hash to a previously
	// clean result. Nil disables caching.
	Cache   *DiskCache
	Sink    ProgressSink
	Timings bool
}

type CheckResult struct {
	FileSet *source.FileSet
	Builder *ast.Builder
	Files   []ast.FileID
	Bag     *diag.Bag
	Program *core.Program
	Shapes  *shape.Registry
	// Cached is set when the cache already knew this exact input set was
	// clean and the pipeline was skipped.
	Cached bool
	Stats  CheckPayload
}

// Check runs load, parse, and expand over the given scripts. Scripts are
// parsed in sorted path order into one shared builder, so shape
// definitions resolve identically from run to run. Only load failures are
// returned as errors; everything downstream lands in the bag.
func Check(paths []string, opts CheckOptions) (*CheckResult, error) {
	paths = append([]string(nil), paths...)
	sort.Strings(paths)

	timer := observ.NewTimer()
	bag := diag.NewBag(opts.MaxDiagnostics)
	fs := source.NewFileSet()

	phase := timer.Begin(string(StageLoad))
	fileIDs := make([]source.FileID, 0, len(paths))
	for _, path := range paths {
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		id, err := fs.Load(path)
		if err != nil {
			bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
				"failed to load file: "+err.Error()))
			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		fileIDs = append(fileIDs, id)
	}
	timer.End(phase, "")

	if bag.HasErrors() {
		return &CheckResult{FileSet: fs, Bag: bag}, nil
	}

	key := contentKey(fs, fileIDs)
	if opts.Cache != nil {
		var payload CheckPayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			for _, path := range paths {
				emit(opts.Sink, Event{File: path, Stage: StageExpand, Status: StatusDone})
			}
			return &CheckResult{
				FileSet: fs,
				Bag:     bag,
				Cached:  true,
				Stats:   payload,
			}, nil
		}
	}

	builder := ast.NewBuilder(ast.Hints{})
	phase = timer.Begin(string(StageParse))
	astFiles := make([]ast.FileID, 0, len(fileIDs))
	for i, id := range fileIDs {
		emit(opts.Sink, Event{File: paths[i], Stage: StageParse, Status: StatusWorking})
		astFile, err := parseInto(fs, builder, id, bag, opts.MaxDiagnostics)
		if err != nil {
			return nil, err
		}
		astFiles = append(astFiles, astFile)
		status := StatusDone
		if bag.HasErrors() {
			status = StatusError
		}
		emit(opts.Sink, Event{File: paths[i], Stage: StageParse, Status: status})
	}
	timer.End(phase, "")

	phase = timer.Begin(string(StageExpand))
	emit(opts.Sink, Event{Stage: StageExpand, Status: StatusWorking})
	res := expand.Expand(builder, astFiles, diag.BagReporter{Bag: bag})
	timer.End(phase, "")

	stats := CheckPayload{
		Schema: diskCacheSchemaVersion,
		Files:  len(fileIDs),
		Shapes: len(res.Shapes.All()),
		Stmts:  len(res.Program.Stmts),
	}
	if opts.Cache != nil && !bag.HasErrors() {
		// Best effort; a failed write never fails the check.
		_ = opts.Cache.Put(key, &stats)
	}
	if opts.Timings {
		appendTimingDiagnostic(bag, timer.Report())
	}

	status := StatusDone
	if bag.HasErrors() {
		status = StatusError
	}
	emit(opts.Sink, Event{Stage: StageExpand, Status: status})

	return &CheckResult{
		FileSet: fs,
		Builder: builder,
		Files:   astFiles,
		Bag:     bag,
		Program: res.Program,
		Shapes:  res.Shapes,
		Stats:   stats,
	}, nil
}

// contentKey folds the schema version and every file's content hash into
// one digest. fileIDs follow sorted path order, so the key is stable.
func contentKey(fs *source.FileSet, fileIDs []source.FileID) Digest {
	digests := make([]Digest, 0, len(fileIDs)+1)
	var schema Digest
	schema[0] = byte(diskCacheSchemaVersion)
	schema[1] = byte(diskCacheSchemaVersion >> 8)
	digests = append(digests, schema)
	for _, id := range fileIDs {
		digests = append(digests, Digest(fs.Get(id).Hash))
	}
	return Combine(digests...)
}
