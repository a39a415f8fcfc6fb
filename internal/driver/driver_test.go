package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/token"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const goodScript = "tuple point(x = 0, y = 0)\nlet p = point({x: 1})\nshow point(p, y)\n"

func TestTokenizeCollectsToEOF(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "a.tup", "show 1\n")

	res, err := Tokenize(path, 16)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("last token = %v", last.Kind)
	}
}

func TestCheckProducesProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.tup", goodScript)

	res, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %v", res.Bag.Items())
	}
	got := core.FormatProgram(res.Program)
	want := "let p = mktuple(1, 0)\nshow get(p, 1)\n"
	if got != want {
		t.Fatalf("program:\n got %q\nwant %q", got, want)
	}
	if res.Stats.Shapes != 1 || res.Stats.Stmts != 2 || res.Stats.Files != 1 {
		t.Fatalf("stats: %+v", res.Stats)
	}
}

func TestCheckReportsExpansionErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.tup", "tuple point(x)\nshow point(w)\n")

	res, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ExpUnknownField {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing unknown-field diagnostic: %v", res.Bag.Items())
	}
}

func TestCheckMissingFile(t *testing.T) {
	res, err := Check([]string{filepath.Join(t.TempDir(), "ghost.tup")}, CheckOptions{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("load failures must land in the bag: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected a load diagnostic")
	}
}

func TestCheckCacheHit(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.tup", goodScript)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	first, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16, Cache: cache})
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if first.Cached {
		t.Fatal("first check cannot be cached")
	}

	second, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16, Cache: cache})
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !second.Cached {
		t.Fatal("second check must hit the cache")
	}
	if diff := cmp.Diff(first.Stats, second.Stats); diff != "" {
		t.Fatalf("cached stats differ (-first +second):\n%s", diff)
	}

	// Editing the script invalidates the key.
	writeScript(t, dir, "main.tup", goodScript+"show point()\n")
	third, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16, Cache: cache})
	if err != nil {
		t.Fatalf("third check: %v", err)
	}
	if third.Cached {
		t.Fatal("edited script must miss the cache")
	}
}

func TestCheckDirtyResultNotCached(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.tup", "show ghost()\n")
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	for i := 0; i < 2; i++ {
		res, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16, Cache: cache})
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if res.Cached {
			t.Fatal("dirty result must never come from cache")
		}
		if !res.Bag.HasErrors() {
			t.Fatal("expected diagnostics")
		}
	}
}

func TestRunWritesShowOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.tup",
		"tuple point(x = 0, y = 0, z = 0)\nlet p = point({_: nothing, y: 2})\nshow p\nshow point(p)\n")

	var sb strings.Builder
	res, err := Run([]string{path}, &sb, RunOptions{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Check.Bag.HasErrors() || res.RunErr != nil {
		t.Fatalf("diags=%v runErr=%v", res.Check.Bag.Items(), res.RunErr)
	}
	want := "(nothing, 2, nothing)\n{x: nothing, y: 2, z: nothing}\n"
	if sb.String() != want {
		t.Fatalf("output:\n got %q\nwant %q", sb.String(), want)
	}
}

func TestRunShapeMismatchSurfacesAsRunErr(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.tup",
		"tuple point(x, y, z)\nlet pair = (1, 2)\nshow point(pair)\n")

	var sb strings.Builder
	res, err := Run([]string{path}, &sb, RunOptions{MaxDiagnostics: 16})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.RunErr == nil {
		t.Fatal("expected a runtime shape mismatch")
	}
	want := "expected argument to be a point tuple of size 3, got: (1, 2)"
	if res.RunErr.Error() != want {
		t.Fatalf("message:\n got %q\nwant %q", res.RunErr.Error(), want)
	}
}

func TestRunTimingsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.tup", "show 1\n")

	var sb strings.Builder
	res, err := Run([]string{path}, &sb, RunOptions{MaxDiagnostics: 16, Timings: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	found := false
	for _, d := range res.Check.Bag.Items() {
		if d.Code == diag.ObsTimings {
			found = true
		}
	}
	if !found {
		t.Fatal("missing timings diagnostic")
	}
}

func TestListScriptsSortedRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeScript(t, dir, "b.tup", "show 1\n")
	writeScript(t, dir, "a.tup", "show 1\n")
	writeScript(t, sub, "c.tup", "show 1\n")
	writeScript(t, dir, "skip.txt", "not a script")

	files, err := ListScripts(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %v", files)
	}
	if !strings.HasSuffix(files[0], "a.tup") || !strings.HasSuffix(files[1], "b.tup") {
		t.Fatalf("order: %v", files)
	}
}

func TestParseDirParallel(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "good.tup", "tuple t(a)\n")
	writeScript(t, dir, "bad.tup", "tuple (\n")

	fs, results, err := ParseDir(context.Background(), dir, 16, 4)
	if err != nil {
		t.Fatalf("parse dir: %v", err)
	}
	if fs.Len() != 2 || len(results) != 2 {
		t.Fatalf("results = %d, files = %d", len(results), fs.Len())
	}
	// Sorted order: bad.tup first.
	if !results[0].Bag.HasErrors() {
		t.Fatalf("bad.tup must report errors: %v", results[0].Bag.Items())
	}
	if results[1].Bag.HasErrors() {
		t.Fatalf("good.tup diagnostics: %v", results[1].Bag.Items())
	}
}

func TestCheckEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.tup", goodScript)

	var events []Event
	sink := SinkFunc(func(ev Event) { events = append(events, ev) })
	if _, err := Check([]string{path}, CheckOptions{MaxDiagnostics: 16, Sink: sink}); err != nil {
		t.Fatalf("check: %v", err)
	}

	sawParse, sawExpandDone := false, false
	for _, ev := range events {
		if ev.Stage == StageParse && ev.File == path {
			sawParse = true
		}
		if ev.Stage == StageExpand && ev.Status == StatusDone {
			sawExpandDone = true
		}
	}
	if !sawParse || !sawExpandDone {
		t.Fatalf("event stream incomplete: %+v", events)
	}
}
