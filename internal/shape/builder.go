package shape

import (
	"fmt"

	"github.com/wrachwal/deftuple/internal/ast"
	"github.com/wrachwal/deftuple/internal/diag"
	"github.com/wrachwal/deftuple/internal/source"
)

// Build normalizes a raw field table into a Shape. Input order is
// preserved exactly; nothing is merged or reordered here.
//
// Rejected at this stage:
//   - duplicate field names (the descriptor would otherwise carry an
//     unreachable second entry, since Resolve is first-wins);
//   - defaults that are not closed literal forms, since a default is
//     re-emitted verbatim at every construction site and must not capture
//     anything from the definition scope.
func Build(b *ast.Builder, file source.FileID, decl *ast.ItemTupleData, reporter diag.Reporter) (*Shape, bool) {
	shapeName := b.Name(decl.Name)
	fields := make([]Field, 0, len(decl.Fields))
	seen := make(map[source.StringID]source.Span, len(decl.Fields))
	ok := true

	for _, fd := range decl.Fields {
		if fd.Name == source.NoStringID {
			// The parser only produces identifier names; this guards
			// hand-built ASTs.
			diag.Error(reporter, diag.ExpNonAtomFieldName, fd.Span,
				fmt.Sprintf("%s: field name must be an identifier", shapeName))
			ok = false
			continue
		}
		if firstSpan, dup := seen[fd.Name]; dup {
			if reporter != nil {
				reporter.Report(diag.ExpDuplicateField, diag.SevError, fd.NameSpan,
					fmt.Sprintf("%s: duplicate field `%s`", shapeName, b.Name(fd.Name)),
					[]diag.Note{{Span: firstSpan, Msg: "first defined here"}})
			}
			ok = false
			continue
		}
		seen[fd.Name] = fd.NameSpan

		if fd.Default.IsValid() {
			if cause, bad := openForm(b, fd.Default); bad {
				diag.Error(reporter, diag.ExpInvalidDefaultValue, b.Exprs.Span(fd.Default),
					fmt.Sprintf("%s: default of field `%s` is not a representable value: %s",
						shapeName, b.Name(fd.Name), cause))
				ok = false
				continue
			}
		}

		fields = append(fields, Field{
			Name:     fd.Name,
			NameSpan: fd.NameSpan,
			Default:  fd.Default,
		})
	}

	if !ok {
		return nil, false
	}
	return &Shape{
		Name:     decl.Name,
		NameSpan: decl.NameSpan,
		Vis:      decl.Vis,
		File:     file,
		Fields:   fields,
	}, true
}

// openForm reports the first sub-expression that keeps a default from
// being a closed literal form, or ("", false) when the default is fine.
func openForm(b *ast.Builder, id ast.ExprID) (string, bool) {
	switch b.Exprs.Kind(id) {
	case ast.ExprLit:
		return "", false
	case ast.ExprIdent:
		data, _ := b.Exprs.Ident(id)
		return fmt.Sprintf("references `%s`", b.Name(data.Name)), true
	case ast.ExprWildcard:
		return "contains `_`", true
	case ast.ExprCall:
		data, _ := b.Exprs.Call(id)
		return fmt.Sprintf("calls `%s`", b.Name(data.Target)), true
	case ast.ExprMatch:
		return "contains a match", true
	case ast.ExprTuple:
		data, _ := b.Exprs.Tuple(id)
		for _, el := range data.Elems {
			if cause, bad := openForm(b, el); bad {
				return cause, true
			}
		}
		return "", false
	case ast.ExprAssoc:
		data, _ := b.Exprs.Assoc(id)
		for _, pair := range data.Pairs {
			if cause, bad := openForm(b, pair.Value); bad {
				return cause, true
			}
		}
		return "", false
	}
	return "unsupported form", true
}
