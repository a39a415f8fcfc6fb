package diag

import (
	"testing"

	"github.com/wrachwal/deftuple/internal/source"
)

func span(file, start, end uint32) source.Span {
	return source.Span{File: source.FileID(file), Start: start, End: end}
}

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(NewError(LexUnknownChar, span(0, 0, 1), "a")) {
		t.Fatal("first Add rejected")
	}
	if !b.Add(NewError(LexUnknownChar, span(0, 1, 2), "b")) {
		t.Fatal("second Add rejected")
	}
	if b.Add(NewError(LexUnknownChar, span(0, 2, 3), "c")) {
		t.Fatal("Add above cap accepted")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SynUnexpectedToken, span(0, 0, 1), "warn"))
	if b.HasErrors() {
		t.Fatal("warning counted as error")
	}
	if !b.HasWarnings() {
		t.Fatal("warning not counted")
	}
	b.Add(NewError(ExpUnknownField, span(0, 1, 2), "err"))
	if !b.HasErrors() {
		t.Fatal("error not detected")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(NewError(ExpUnknownField, span(1, 5, 6), "later file"))
	b.Add(NewError(SynUnexpectedToken, span(0, 9, 10), "later offset"))
	b.Add(New(SevWarning, LexInfo, span(0, 2, 3), "warning first pos"))
	b.Add(NewError(LexUnknownChar, span(0, 2, 3), "error same pos"))
	b.Sort()

	got := b.Items()
	if got[0].Message != "error same pos" {
		t.Errorf("item 0 = %q (severity must win at equal span)", got[0].Message)
	}
	if got[1].Message != "warning first pos" {
		t.Errorf("item 1 = %q", got[1].Message)
	}
	if got[2].Message != "later offset" {
		t.Errorf("item 2 = %q", got[2].Message)
	}
	if got[3].Message != "later file" {
		t.Errorf("item 3 = %q", got[3].Message)
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynUnexpectedToken, "SYN2001"},
		{ExpUnknownField, "EXP3005"},
		{IOFileNotFound, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("Code(%d).ID() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestBagReporter(t *testing.T) {
	b := NewBag(10)
	var r Reporter = BagReporter{Bag: b}
	Error(r, ExpUnknownShape, span(0, 0, 4), "point: unknown tuple shape")
	if b.Len() != 1 || b.Items()[0].Code != ExpUnknownShape {
		t.Fatalf("reporter did not store the diagnostic: %+v", b.Items())
	}
}
