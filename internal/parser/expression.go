package parser

import (
	"strconv"
	"strings"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/token"
)

// parseExpr parses one expression. The grammar is flat: literals, names,
// wildcard, tuple literals, association-list literals, shape calls, match.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwMatch:
		return p.parseMatch()
	case token.LParen:
		return p.parseParen()
	case token.LBrace:
		return p.parseAssoc()
	case token.Underscore:
		tok := p.advance()
		return p.arenas.Exprs.NewWildcard(tok.Span), true
	case token.Ident:
		return p.parseIdentOrCall()
	case token.Minus, token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.NothingLit:
		return p.parseLit()
	default:
		p.err(diag.SynExpectExpr, "expected expression, got "+describeToken(p.lx.Peek()))
		return ast.NoExprID, false
	}
}

// parseIdentOrCall parses a bare name or name(args...).
func (p *Parser) parseIdentOrCall() (ast.ExprID, bool) {
	nameTok := p.advance()
	name := p.arenas.Strings.Intern(nameTok.Text)

	if !p.at(token.LParen) {
		return p.arenas.Exprs.NewIdent(nameTok.Span, name), true
	}
	p.advance() // '('

	args := make([]ast.ExprID, 0, 2)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.eatComma() {
			break
		}
	}
	rparen, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' closing the argument list")
	if !ok {
		return ast.NoExprID, false
	}

	span := nameTok.Span.Cover(rparen.Span)
	return p.arenas.Exprs.NewCall(span, name, nameTok.Span, args), true
}

// parseParen parses grouping `(e)` or a tuple literal `(a, b, ...)`.
func (p *Parser) parseParen() (ast.ExprID, bool) {
	lparen := p.advance() // '('

	if p.at(token.RParen) {
		p.err(diag.SynExpectExpr, "expected expression inside parentheses")
		return ast.NoExprID, false
	}

	elems := make([]ast.ExprID, 0, 3)
	for {
		elem, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
		if !p.eatComma() {
			break
		}
		if p.at(token.RParen) { // trailing comma
			break
		}
	}
	rparen, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')'")
	if !ok {
		return ast.NoExprID, false
	}

	if len(elems) == 1 {
		// Plain grouping, not a 1-tuple.
		return elems[0], true
	}
	span := lparen.Span.Cover(rparen.Span)
	return p.arenas.Exprs.NewTuple(span, elems), true
}

// parseAssoc parses `{key: value, ...}`; `_` is a legal key.
func (p *Parser) parseAssoc() (ast.ExprID, bool) {
	lbrace := p.advance() // '{'

	pairs := make([]ast.AssocPair, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		pair, ok := p.parseAssocPair()
		if !ok {
			return ast.NoExprID, false
		}
		pairs = append(pairs, pair)
		if !p.eatComma() {
			break
		}
	}
	rbrace, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' closing the association list")
	if !ok {
		return ast.NoExprID, false
	}

	span := lbrace.Span.Cover(rbrace.Span)
	return p.arenas.Exprs.NewAssoc(span, pairs), true
}

func (p *Parser) parseAssocPair() (ast.AssocPair, bool) {
	var pair ast.AssocPair
	switch p.lx.Peek().Kind {
	case token.Ident:
		keyTok := p.advance()
		pair.Key = p.arenas.Strings.Intern(keyTok.Text)
		pair.KeySpan = keyTok.Span
	case token.Underscore:
		keyTok := p.advance()
		pair.Wildcard = true
		pair.KeySpan = keyTok.Span
	default:
		p.err(diag.SynExpectIdentifier,
			"expected field name or '_' as association key, got "+describeToken(p.lx.Peek()))
		return ast.AssocPair{}, false
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after association key"); !ok {
		return ast.AssocPair{}, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.AssocPair{}, false
	}
	pair.Value = value
	return pair, true
}

// parseMatch parses `match subject { pattern => body, ... }`.
// Patterns are parsed as ordinary expressions; their validity as patterns
// is decided during expansion, which knows the pattern context.
func (p *Parser) parseMatch() (ast.ExprID, bool) {
	matchTok := p.advance() // 'match'

	subject, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after match subject"); !ok {
		return ast.NoExprID, false
	}

	arms := make([]ast.MatchArm, 0, 2)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		pattern, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.FatArrow, diag.SynExpectFatArrow, "expected '=>' after match pattern"); !ok {
			return ast.NoExprID, false
		}
		body, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		arms = append(arms, ast.MatchArm{
			Pattern: pattern,
			Body:    body,
			Span:    p.arenas.Exprs.Span(pattern).Cover(p.arenas.Exprs.Span(body)),
		})
		if !p.eatComma() {
			break
		}
	}
	rbrace, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' closing the match")
	if !ok {
		return ast.NoExprID, false
	}
	if len(arms) == 0 {
		p.report(diag.SynEmptyMatch, diag.SevError, matchTok.Span.Cover(rbrace.Span),
			"match must have at least one arm")
		return ast.NoExprID, false
	}

	span := matchTok.Span.Cover(rbrace.Span)
	return p.arenas.Exprs.NewMatch(span, subject, arms), true
}

// parseLit parses literals, folding a leading '-' into the numeric value.
func (p *Parser) parseLit() (ast.ExprID, bool) {
	neg := false
	span := p.lx.Peek().Span
	if p.at(token.Minus) {
		neg = true
		p.advance()
		if !p.at(token.IntLit) && !p.at(token.FloatLit) {
			p.err(diag.SynExpectExpr, "expected numeric literal after '-'")
			return ast.NoExprID, false
		}
	}

	tok := p.advance()
	span = span.Cover(tok.Span)

	switch tok.Kind {
	case token.IntLit:
		text := strings.ReplaceAll(tok.Text, "_", "")
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal out of range")
			return ast.NoExprID, false
		}
		if neg {
			v = -v
		}
		return p.arenas.Exprs.NewLit(span, ast.ExprLitData{Kind: ast.LitInt, IntVal: v}), true

	case token.FloatLit:
		text := strings.ReplaceAll(tok.Text, "_", "")
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "float literal out of range")
			return ast.NoExprID, false
		}
		if neg {
			v = -v
		}
		return p.arenas.Exprs.NewLit(span, ast.ExprLitData{Kind: ast.LitFloat, FloatVal: v}), true

	case token.StringLit:
		s, ok := decodeString(tok.Text)
		if !ok {
			p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "invalid escape in string literal")
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewLit(span, ast.ExprLitData{Kind: ast.LitString, StrVal: s}), true

	case token.KwTrue:
		return p.arenas.Exprs.NewLit(span, ast.ExprLitData{Kind: ast.LitBool, BoolVal: true}), true
	case token.KwFalse:
		return p.arenas.Exprs.NewLit(span, ast.ExprLitData{Kind: ast.LitBool, BoolVal: false}), true
	case token.NothingLit:
		return p.arenas.Exprs.NewLit(span, ast.ExprLitData{Kind: ast.LitNothing}), true
	}

	p.err(diag.SynExpectExpr, "expected literal")
	return ast.NoExprID, false
}

// decodeString strips quotes and resolves the escape subset \" \\ \n \t \r.
func decodeString(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, true
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b != '\\' {
			sb.WriteByte(b)
			continue
		}
		i++
		if i >= len(body) {
			return "", false
		}
		switch body[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			return "", false
		}
	}
	return sb.String(), true
}
