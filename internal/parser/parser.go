package parser

import (
	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/lexer"
	"github.com/wrachwal/deftuple/internal/source"
	"github.com/wrachwal/deftuple/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics
}

// ParseFile parses one tuple script into the shared builder.
// The lexer must be positioned at the start of the file.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	srcID source.FileID,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan(), srcID),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

// parseItems is the top-level loop: parse items until EOF, resyncing after
// a failed item so one mistake does not drown the rest of the file.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) && !p.opts.Enough() {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the leading token of a top-level construct.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwPub:
		pubTok := p.advance()
		if !p.at(token.KwTuple) {
			p.err(diag.SynUnexpectedToken, "expected `tuple` after `pub`")
			return ast.NoItemID, false
		}
		return p.parseTupleItem(ast.VisPublic, pubTok.Span)
	case token.KwTuple:
		return p.parseTupleItem(ast.VisPrivate, p.lx.Peek().Span)
	case token.KwLet:
		return p.parseLetItem()
	case token.KwShow:
		return p.parseShowItem()
	default:
		p.err(diag.SynUnexpectedTopLevel,
			"expected `tuple`, `pub tuple`, `let` or `show` at top level")
		return ast.NoItemID, false
	}
}

// resyncTop skips tokens until something that can start an item.
func (p *Parser) resyncTop() {
	for {
		switch p.lx.Peek().Kind {
		case token.EOF, token.KwPub, token.KwTuple, token.KwLet, token.KwShow:
			return
		}
		p.advance()
	}
}
