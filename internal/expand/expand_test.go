package expand_test

import (
	"strings"
	"testing"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/core"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/expand"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/parser"
	"github.com/wrachwal/deftuple/internal/source"
)

// expandSource runs the full lex+parse+expand pipeline over one virtual
// file and returns the lowered program plus collected diagnostics.
func expandSource(t *testing.T, input string) (expand.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tup", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile(fs, lx, b, fileID, parser.Options{Reporter: reporter})
	if pres.Bag.HasErrors() {
		t.Fatalf("parse diagnostics: %v", pres.Bag.Items())
	}

	res := expand.Expand(b, []ast.FileID{pres.File}, reporter)
	return res, bag
}

// lowered expands input, requires no diagnostics, and returns the printed
// core program.
func lowered(t *testing.T, input string) string {
	t.Helper()
	res, bag := expandSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("expansion diagnostics: %v", bag.Items())
	}
	return core.FormatProgram(res.Program)
}

// expansionErr expands input and requires exactly the given code among the
// diagnostics; returns the first matching message.
func expansionErr(t *testing.T, input string, code diag.Code) string {
	t.Helper()
	_, bag := expandSource(t, input)
	for _, d := range bag.Items() {
		if d.Code == code {
			return d.Message
		}
	}
	t.Fatalf("no %s diagnostic, got: %v", code.ID(), bag.Items())
	return ""
}

const pointDef = "tuple point(x = 0, y = 0, z = 0)\n"

func TestConstructDefaults(t *testing.T) {
	got := lowered(t, pointDef+"show point()")
	want := "show mktuple(0, 0, 0)\n"
	if got != want {
		t.Fatalf("lowered:\n got %q\nwant %q", got, want)
	}
}

func TestConstructNoDeclaredDefaults(t *testing.T) {
	got := lowered(t, "tuple timestamp(date, time)\nshow timestamp()")
	want := "show mktuple(nothing, nothing)\n"
	if got != want {
		t.Fatalf("lowered:\n got %q\nwant %q", got, want)
	}
}

func TestConstructOverridesFirstWins(t *testing.T) {
	got := lowered(t, pointDef+"show point({x: 1, y: 2, z: 3, x: 111, y: 222, z: 333})")
	want := "show mktuple(1, 2, 3)\n"
	if got != want {
		t.Fatalf("first-wins broken:\n got %q\nwant %q", got, want)
	}
}

func TestConstructWildcardRule(t *testing.T) {
	got := lowered(t, pointDef+"show point({_: nothing, y: 2})")
	want := "show mktuple(nothing, 2, nothing)\n"
	if got != want {
		t.Fatalf("wildcard rule broken:\n got %q\nwant %q", got, want)
	}
}

func TestFieldIndexIsDefinitionRank(t *testing.T) {
	got := lowered(t, pointDef+"show point(x)\nshow point(y)\nshow point(z)")
	want := "show 0\nshow 1\nshow 2\n"
	if got != want {
		t.Fatalf("indices:\n got %q\nwant %q", got, want)
	}
}

func TestFieldIndexUnknown(t *testing.T) {
	msg := expansionErr(t, pointDef+"show point(w)", diag.ExpUnknownField)
	if !strings.Contains(msg, "point") || !strings.Contains(msg, "`w`") {
		t.Fatalf("message must name shape and field: %q", msg)
	}
}

func TestGetter(t *testing.T) {
	got := lowered(t, pointDef+"let p = point()\nshow point(p, y)")
	want := "let p = mktuple(0, 0, 0)\nshow get(p, 1)\n"
	if got != want {
		t.Fatalf("getter:\n got %q\nwant %q", got, want)
	}
}

func TestUpdateChainsLeftToRight(t *testing.T) {
	got := lowered(t, pointDef+"let p = point()\nshow point(p, {y: 5, x: 4, y: 6})")
	// Later entries replace the prior result positionally: last wins.
	want := "let p = mktuple(0, 0, 0)\nshow set(set(set(p, 1, 5), 0, 4), 1, 6)\n"
	if got != want {
		t.Fatalf("update chain:\n got %q\nwant %q", got, want)
	}
}

func TestUpdateWildcardKeyIsUnknownField(t *testing.T) {
	msg := expansionErr(t, pointDef+"let p = point()\nshow point(p, {_: 1})", diag.ExpUnknownField)
	if !strings.Contains(msg, "`_`") {
		t.Fatalf("message: %q", msg)
	}
}

func TestUpdateUnknownField(t *testing.T) {
	expansionErr(t, pointDef+"let p = point()\nshow point(p, {w: 1})", diag.ExpUnknownField)
}

func TestConstructUnknownFieldNamesFirstLeftover(t *testing.T) {
	msg := expansionErr(t, pointDef+"show point({w: 1, v: 2})", diag.ExpUnknownField)
	if !strings.Contains(msg, "`w`") {
		t.Fatalf("must name the first leftover in argument order: %q", msg)
	}
}

func TestConvertNarrowsTupleLiteral(t *testing.T) {
	got := lowered(t, pointDef+"show point((1, 2, 3))")
	want := "show {x: 1, y: 2, z: 3}\n"
	if got != want {
		t.Fatalf("narrowed convert:\n got %q\nwant %q", got, want)
	}
}

func TestConvertNarrowsPairForArityTwo(t *testing.T) {
	got := lowered(t, "tuple span(lo, hi)\nshow span((7, 9))")
	want := "show {lo: 7, hi: 9}\n"
	if got != want {
		t.Fatalf("pair narrowing:\n got %q\nwant %q", got, want)
	}
}

func TestConvertDefersWrongArityLiteral(t *testing.T) {
	// Statically known to mismatch, but the contract is a runtime
	// shape-mismatch error, not a compile-time one.
	got := lowered(t, pointDef+"show point((1, 2))")
	want := "show toassoc[point/3](mktuple(1, 2))\n"
	if got != want {
		t.Fatalf("deferred convert:\n got %q\nwant %q", got, want)
	}
}

func TestConvertDefersMatchExpression(t *testing.T) {
	got := lowered(t, pointDef+"show point(match 1 { _ => (1, 2, 3) })")
	want := "show toassoc[point/3](match 1 { _ => mktuple(1, 2, 3) })\n"
	if got != want {
		t.Fatalf("deferred convert:\n got %q\nwant %q", got, want)
	}
}

func TestConvertDefersLetBoundValue(t *testing.T) {
	// An identifier argument that names a binding carries a value, so it
	// is a conversion, not a field lookup.
	got := lowered(t, pointDef+"let v = (1, 2, 3)\nshow point(v)")
	want := "let v = mktuple(1, 2, 3)\nshow toassoc[point/3](v)\n"
	if got != want {
		t.Fatalf("deferred convert of binding:\n got %q\nwant %q", got, want)
	}
}

func TestBindingShadowsFieldName(t *testing.T) {
	got := lowered(t, pointDef+"let x = (1, 2, 3)\nshow point(x)")
	want := "let x = mktuple(1, 2, 3)\nshow toassoc[point/3](x)\n"
	if got != want {
		t.Fatalf("binding must shadow the field reading:\n got %q\nwant %q", got, want)
	}
}

func TestPatternBindingReachesConverter(t *testing.T) {
	got := lowered(t, pointDef+"show match (1, 2, 3) { v => point(v) }")
	want := "show match mktuple(1, 2, 3) { v => toassoc[point/3](v) }\n"
	if got != want {
		t.Fatalf("arm binding must be in scope for its body:\n got %q\nwant %q", got, want)
	}
}

func TestPatternBindingScopeEndsWithArm(t *testing.T) {
	// `v` binds only inside its arm; afterwards point(v) is a field
	// lookup again and fails.
	expansionErr(t,
		pointDef+"let r = match 1 { v => v }\nshow point(v)",
		diag.ExpUnknownField)
}

func TestGetterRejectsBindingAsFieldArgument(t *testing.T) {
	msg := expansionErr(t,
		pointDef+"let p = point()\nlet f = 1\nshow point(p, f)",
		diag.ExpInvalidArgumentShape)
	if !strings.Contains(msg, "`f`") {
		t.Fatalf("message must name the binding: %q", msg)
	}
}

func TestConstructPatternContext(t *testing.T) {
	got := lowered(t, pointDef+"let p = point({x: 1})\nshow match p { point({x: a}) => a, _ => 99 }")
	want := "let p = mktuple(1, 0, 0)\n" +
		"show match p { mktuple(a, _, _) => a, _ => 99 }\n"
	if got != want {
		t.Fatalf("pattern construct:\n got %q\nwant %q", got, want)
	}
}

func TestConstructDefaultsPatternBindsNothing(t *testing.T) {
	got := lowered(t, pointDef+"let p = point()\nshow match p { point() => 1 }")
	want := "let p = mktuple(0, 0, 0)\nshow match p { mktuple(_, _, _) => 1 }\n"
	if got != want {
		t.Fatalf("all-wildcard pattern:\n got %q\nwant %q", got, want)
	}
}

func TestFieldIndexInPatternIsLiteral(t *testing.T) {
	got := lowered(t, pointDef+"show match 2 { point(z) => true, _ => false }")
	want := "show match 2 { 2 => true, _ => false }\n"
	if got != want {
		t.Fatalf("index pattern:\n got %q\nwant %q", got, want)
	}
}

func TestUpdateInMatchContext(t *testing.T) {
	msg := expansionErr(t,
		pointDef+"let p = point()\nshow match p { point(p, {x: 1}) => 1 }",
		diag.ExpUpdateInMatchContext)
	if !strings.Contains(msg, "point") {
		t.Fatalf("message must name the shape: %q", msg)
	}
}

func TestConvertInPatternRejected(t *testing.T) {
	expansionErr(t, pointDef+"show match 1 { point((1, 2, 3)) => 1 }", diag.ExpBadPattern)
}

func TestUnknownShape(t *testing.T) {
	msg := expansionErr(t, "show ghost()", diag.ExpUnknownShape)
	if !strings.Contains(msg, "`ghost`") {
		t.Fatalf("message: %q", msg)
	}
}

func TestInvalidSecondArgument(t *testing.T) {
	expansionErr(t, pointDef+"let p = point()\nshow point(p, 3)", diag.ExpInvalidArgumentShape)
	expansionErr(t, pointDef+"let p = point()\nshow point(p, (1, 2))", diag.ExpInvalidArgumentShape)
}

func TestTooManyArguments(t *testing.T) {
	expansionErr(t, pointDef+"let p = point()\nshow point(p, x, y)", diag.ExpInvalidArgumentShape)
}

func TestDuplicateShapeDefinition(t *testing.T) {
	expansionErr(t, pointDef+"tuple point(a)", diag.ExpDuplicateShape)
}

func TestWildcardKeyOutsideConstruction(t *testing.T) {
	expansionErr(t, "let a = {_: 1}", diag.ExpBadPattern)
}

func TestFailedStatementIsDroppedOthersSurvive(t *testing.T) {
	res, bag := expandSource(t, pointDef+"show point(w)\nshow point()")
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	got := core.FormatProgram(res.Program)
	want := "show mktuple(0, 0, 0)\n"
	if got != want {
		t.Fatalf("surviving statements:\n got %q\nwant %q", got, want)
	}
}

func TestPrivateShapeInvisibleAcrossFiles(t *testing.T) {
	fs := source.NewFileSet()
	defID := fs.AddVirtual("def.tup", []byte("tuple secret(a)\npub tuple open(a)\n"))
	useID := fs.AddVirtual("use.tup", []byte("show secret()\nshow open()\n"))

	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})

	var files []ast.FileID
	for _, id := range []source.FileID{defID, useID} {
		lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
		pres := parser.ParseFile(fs, lx, b, id, parser.Options{Reporter: reporter})
		files = append(files, pres.File)
	}

	res := expand.Expand(b, files, reporter)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ExpUnknownShape && strings.Contains(d.Message, "`secret`") {
			found = true
		}
	}
	if !found {
		t.Fatalf("private shape leaked across files: %v", bag.Items())
	}
	if got := core.FormatProgram(res.Program); got != "show mktuple(nothing)\n" {
		t.Fatalf("public shape must stay usable: %q", got)
	}
}
