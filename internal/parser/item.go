package parser

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

// parseTupleItem parses `tuple name(field, field = default, ...)`.
// The `pub`/`tuple` keyword has not been consumed when vis is private.
func (p *Parser) parseTupleItem(vis ast.Visibility, startSpan source.Span) (ast.ItemID, bool) {
	p.advance() // 'tuple'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected tuple name")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after tuple name"); !ok {
		return ast.NoItemID, false
	}

	fields := make([]ast.FieldDef, 0, 4)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		field, ok := p.parseFieldDef()
		if !ok {
			return ast.NoItemID, false
		}
		fields = append(fields, field)
		if !p.eatComma() {
			break
		}
	}

	rparen, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' closing the field list")
	if !ok {
		return ast.NoItemID, false
	}

	span := startSpan.Cover(rparen.Span)
	id := p.arenas.Items.NewTuple(span, ast.ItemTupleData{
		Vis:      vis,
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Fields:   fields,
	})
	return id, true
}

// parseFieldDef parses one field table entry: `name` or `name = default`.
// Anything that is not an identifier in name position is reported with the
// offending token spelled out, per the field table contract.
func (p *Parser) parseFieldDef() (ast.FieldDef, bool) {
	tok := p.lx.Peek()
	if tok.Kind != token.Ident {
		p.report(diag.ExpNonAtomFieldName, diag.SevError, tok.Span,
			"field name must be an identifier, got: "+describeToken(tok))
		return ast.FieldDef{}, false
	}
	nameTok := p.advance()

	field := ast.FieldDef{
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Default:  ast.NoExprID,
		Span:     nameTok.Span,
	}

	if p.at(token.Assign) {
		p.advance()
		def, ok := p.parseExpr()
		if !ok {
			return ast.FieldDef{}, false
		}
		field.Default = def
		field.Span = field.Span.Cover(p.arenas.Exprs.Span(def))
	}
	return field, true
}

// parseLetItem parses `let name = expr`.
func (p *Parser) parseLetItem() (ast.ItemID, bool) {
	letTok := p.advance() // 'let'

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected binding name after `let`")
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in let binding"); !ok {
		return ast.NoItemID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoItemID, false
	}

	span := letTok.Span.Cover(p.arenas.Exprs.Span(value))
	id := p.arenas.Items.NewLet(span, ast.ItemLetData{
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Value:    value,
	})
	return id, true
}

// parseShowItem parses `show expr`.
func (p *Parser) parseShowItem() (ast.ItemID, bool) {
	showTok := p.advance() // 'show'

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoItemID, false
	}
	span := showTok.Span.Cover(p.arenas.Exprs.Span(value))
	id := p.arenas.Items.NewShow(span, ast.ItemShowData{Value: value})
	return id, true
}

func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	default:
		return "`" + tok.Text + "`"
	}
}
