package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		kind  Kind
		ok    bool
	}{
		{"tuple", KwTuple, true},
		{"pub", KwPub, true},
		{"let", KwLet, true},
		{"show", KwShow, true},
		{"match", KwMatch, true},
		{"nothing", NothingLit, true},
		{"true", KwTrue, true},
		{"false", KwFalse, true},
		{"Tuple", Invalid, false}, // case-sensitive
		{"point", Invalid, false},
		{"", Invalid, false},
	}
	for _, tc := range cases {
		k, ok := LookupKeyword(tc.ident)
		if ok != tc.ok {
			t.Errorf("LookupKeyword(%q) ok = %v, want %v", tc.ident, ok, tc.ok)
			continue
		}
		if ok && k != tc.kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tc.ident, k, tc.kind)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	lit := Token{Kind: IntLit, Text: "42"}
	if !lit.IsLiteral() || lit.IsKeyword() || lit.IsIdent() {
		t.Errorf("IntLit predicates wrong: %+v", lit)
	}
	kw := Token{Kind: KwTuple, Text: "tuple"}
	if !kw.IsKeyword() || kw.IsLiteral() {
		t.Errorf("KwTuple predicates wrong: %+v", kw)
	}
	id := Token{Kind: Ident, Text: "point"}
	if !id.IsIdent() || id.IsKeyword() || id.IsLiteral() {
		t.Errorf("Ident predicates wrong: %+v", id)
	}
}

func TestKindString(t *testing.T) {
	if KwTuple.String() != "tuple" {
		t.Errorf("KwTuple.String() = %q", KwTuple.String())
	}
	if FatArrow.String() != "=>" {
		t.Errorf("FatArrow.String() = %q", FatArrow.String())
	}
	if Kind(200).String() != "Kind(?)" {
		t.Errorf("out-of-range String() = %q", Kind(200).String())
	}
}
