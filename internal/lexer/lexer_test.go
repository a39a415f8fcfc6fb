package lexer_test

import (
	"testing"

	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

// makeTestLexer builds a lexer over a virtual file plus a bag for diagnostics.
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.tup", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectKinds(lx *lexer.Lexer) []token.Kind {
	kinds := make([]token.Kind, 0)
	for {
		tok := lx.Next()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			return kinds
		}
	}
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexDefinition(t *testing.T) {
	lx, bag := makeTestLexer("pub tuple point(x = 0, y = 0, z = 0)")
	got := collectKinds(lx)
	want := []token.Kind{
		token.KwPub, token.KwTuple, token.Ident, token.LParen,
		token.Ident, token.Assign, token.IntLit, token.Comma,
		token.Ident, token.Assign, token.IntLit, token.Comma,
		token.Ident, token.Assign, token.IntLit, token.RParen,
		token.EOF,
	}
	if !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexAssocAndMatch(t *testing.T) {
	lx, bag := makeTestLexer("match p { point({_: nothing, x: px}) => px, _ => 0 }")
	got := collectKinds(lx)
	want := []token.Kind{
		token.KwMatch, token.Ident, token.LBrace,
		token.Ident, token.LParen, token.LBrace,
		token.Underscore, token.Colon, token.NothingLit, token.Comma,
		token.Ident, token.Colon, token.Ident,
		token.RBrace, token.RParen, token.FatArrow, token.Ident, token.Comma,
		token.Underscore, token.FatArrow, token.IntLit,
		token.RBrace, token.EOF,
	}
	if !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexLiterals(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  token.Kind
		text  string
	}{
		{"int", "42", token.IntLit, "42"},
		{"int with underscore", "1_000", token.IntLit, "1_000"},
		{"float", "3.25", token.FloatLit, "3.25"},
		{"float exponent", "1e-3", token.FloatLit, "1e-3"},
		{"string", `"foo"`, token.StringLit, `"foo"`},
		{"string with escape", `"a\"b"`, token.StringLit, `"a\"b"`},
		{"nothing", "nothing", token.NothingLit, "nothing"},
		{"true", "true", token.KwTrue, "true"},
		{"false", "false", token.KwFalse, "false"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.input)
			tok := lx.Next()
			if tok.Kind != tc.want || tok.Text != tc.text {
				t.Errorf("token = (%v, %q), want (%v, %q)", tok.Kind, tok.Text, tc.want, tc.text)
			}
			if bag.HasErrors() {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLexTrivia(t *testing.T) {
	lx, _ := makeTestLexer("// header\nlet x = 1 // trailing\n")
	got := collectKinds(lx)
	want := []token.Kind{token.KwLet, token.Ident, token.Assign, token.IntLit, token.EOF}
	if !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLexUnderscoreForms(t *testing.T) {
	lx, _ := makeTestLexer("_ _x x_")
	toks := []token.Token{lx.Next(), lx.Next(), lx.Next()}
	if toks[0].Kind != token.Underscore {
		t.Errorf("lone underscore = %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "_x" {
		t.Errorf("_x = (%v, %q)", toks[1].Kind, toks[1].Text)
	}
	if toks[2].Kind != token.Ident || toks[2].Text != "x_" {
		t.Errorf("x_ = (%v, %q)", toks[2].Kind, toks[2].Text)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"unknown char", "let x = $", diag.LexUnknownChar},
		{"unterminated string", `"abc`, diag.LexUnterminatedString},
		{"newline in string", "\"abc\ndef\"", diag.LexUnterminatedString},
		{"bad exponent", "1e+", diag.LexBadNumber},
		{"number into ident", "1x", diag.LexBadNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tc.input)
			collectKinds(lx)
			if !bag.HasErrors() {
				t.Fatal("expected a diagnostic")
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tc.code {
					found = true
				}
			}
			if !found {
				t.Errorf("missing code %v in %v", tc.code, bag.Items())
			}
		})
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("tuple t()")
	if lx.Peek().Kind != token.KwTuple {
		t.Fatal("Peek kind")
	}
	if lx.Next().Kind != token.KwTuple {
		t.Fatal("Next after Peek must return the same token")
	}
	if lx.Next().Kind != token.Ident {
		t.Fatal("stream advanced incorrectly")
	}
}
