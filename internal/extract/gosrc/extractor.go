// Package gosrc is the reference [method.Extractor] implementation for Go
// source files: it parses with go/parser and lowers the resulting AST into
// the engine's neutral pkg/tree representation.
package gosrc

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/method"
	"github.com/dupscan/dupscan/pkg/tree"
)

// Extractor implements method.Extractor for ".go" files.
type Extractor struct{}

// New returns a ready-to-use Go source extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions reports the single extension this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".go"}
}

// Extract parses path and emits one method.Info per top-level function
// declaration, method declaration, and named local function literal.
func (e *Extractor) Extract(path string) ([]method.Info, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution|parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("gosrc: parse %s: %w", path, err)
	}

	var out []method.Info

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}

		out = append(out, lowerFuncDecl(fset, path, fd))
		out = append(out, localFuncLits(fset, path, fd)...)
	}

	return out, nil
}

func lowerFuncDecl(fset *token.FileSet, path string, fd *ast.FuncDecl) method.Info {
	l := newLowerer(fset, path)

	body := l.lowerBlock(fd.Body)

	start := fset.Position(fd.Pos())
	end := fset.Position(fd.End())

	info := method.Info{
		Name:       fd.Name.Name,
		FilePath:   path,
		StartLine:  start.Line,
		EndLine:    end.Line,
		Params:     paramNames(fd.Type.Params),
		Attributes: goDirectives(fd.Doc),
		Concurrent: l.sawGo,
		Tree:       tree.New(kind.KindMethod, "", body),
	}

	if fd.Recv != nil && len(fd.Recv.List) > 0 {
		info.ClassContext = receiverTypeName(fd.Recv.List[0].Type)
	}

	return info
}

// localFuncLits finds function literals bound to a named identifier with
// `:=` or `=` anywhere within fd's body, including nested blocks and
// nested function literals — Go's closest equivalent to a local function
// declaration (spec §4.9).
func localFuncLits(fset *token.FileSet, path string, fd *ast.FuncDecl) []method.Info {
	var out []method.Info

	ast.Inspect(fd.Body, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignStmt)
		if !ok || len(assign.Lhs) != 1 || len(assign.Rhs) != 1 {
			return true
		}

		ident, ok := assign.Lhs[0].(*ast.Ident)
		if !ok {
			return true
		}

		lit, ok := assign.Rhs[0].(*ast.FuncLit)
		if !ok || lit.Body == nil {
			return true
		}

		l := newLowerer(fset, path)
		body := l.lowerBlock(lit.Body)

		start := fset.Position(lit.Pos())
		end := fset.Position(lit.End())

		out = append(out, method.Info{
			Name:       ident.Name,
			NameSuffix: "local",
			FilePath:   path,
			StartLine:  start.Line,
			EndLine:    end.Line,
			Params:     paramNames(lit.Type.Params),
			Concurrent: l.sawGo,
			Tree:       tree.New(kind.KindMethod, "", body),
		})

		return true
	})

	return out
}

func paramNames(fields *ast.FieldList) []string {
	if fields == nil {
		return nil
	}

	var names []string

	for _, f := range fields.List {
		if len(f.Names) == 0 {
			names = append(names, "_")

			continue
		}

		for _, n := range f.Names {
			names = append(names, n.Name)
		}
	}

	return names
}

// receiverTypeName strips pointer and generic-instantiation decoration
// from a method receiver's type expression, e.g. "*Foo[T]" -> "Foo".
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}

// goDirectives collects "//go:directive" comments immediately preceding a
// declaration — the nearest Go analogue to attributes/decorators.
func goDirectives(doc *ast.CommentGroup) []string {
	if doc == nil {
		return nil
	}

	var out []string

	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, "//go:") {
			out = append(out, strings.TrimPrefix(c.Text, "//"))
		}
	}

	return out
}
