package gosrc

import (
	"go/ast"
	"go/token"

	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/tree"
)

// lowerer holds the per-declaration state needed while walking one
// function body: the source path and whether a go statement was seen,
// which supplements method.Info.Concurrent (spec §4.9).
type lowerer struct {
	path  string
	sawGo bool
}

func newLowerer(fset *token.FileSet, path string) *lowerer {
	return &lowerer{path: path}
}

func (l *lowerer) lowerBlock(b *ast.BlockStmt) *tree.Node {
	if b == nil {
		return tree.New(kind.KindBlock, "")
	}

	children := make([]*tree.Node, 0, len(b.List))
	for _, s := range b.List {
		if n := l.lowerStmt(s); n != nil {
			children = append(children, n)
		}
	}

	return tree.New(kind.KindBlock, "", children...)
}

func (l *lowerer) lowerStmt(s ast.Stmt) *tree.Node {
	switch st := s.(type) {
	case *ast.ExprStmt:
		return l.lowerExpr(st.X)

	case *ast.AssignStmt:
		return l.lowerAssign(st)

	case *ast.IncDecStmt:
		return tree.New(kind.KindIncDec, st.Tok.String(), l.lowerExpr(st.X))

	case *ast.ReturnStmt:
		children := l.lowerExprList(st.Results)

		return tree.New(kind.KindReturn, "", children...)

	case *ast.IfStmt:
		return l.lowerIf(st)

	case *ast.ForStmt:
		return l.lowerFor(st)

	case *ast.RangeStmt:
		return l.lowerRange(st)

	case *ast.SwitchStmt:
		return l.lowerSwitch(st)

	case *ast.TypeSwitchStmt:
		return l.lowerTypeSwitch(st)

	case *ast.SelectStmt:
		return l.lowerSelect(st)

	case *ast.BranchStmt:
		return l.lowerBranch(st)

	case *ast.LabeledStmt:
		return tree.New(kind.KindLabel, st.Label.Name, l.lowerStmt(st.Stmt))

	case *ast.DeferStmt:
		return tree.New(kind.KindDefer, "", l.lowerExpr(st.Call))

	case *ast.GoStmt:
		l.sawGo = true

		return tree.New(kind.KindGo, "", l.lowerExpr(st.Call))

	case *ast.DeclStmt:
		return l.lowerDecl(st.Decl)

	case *ast.BlockStmt:
		return l.lowerBlock(st)

	case *ast.SendStmt:
		return tree.New(kind.KindCall, "send", l.lowerExpr(st.Chan), l.lowerExpr(st.Value))

	case *ast.EmptyStmt:
		return tree.New(kind.KindEmpty, "")

	default:
		return tree.New(kind.KindUnknown, "")
	}
}

func (l *lowerer) lowerAssign(st *ast.AssignStmt) *tree.Node {
	var k kind.Kind

	switch st.Tok {
	case token.DEFINE:
		k = kind.KindShortVarAssign
	case token.ASSIGN:
		k = kind.KindSimpleAssign
	default:
		k = kind.KindCompoundAssign
	}

	children := append(l.lowerExprList(st.Lhs), l.lowerExprList(st.Rhs)...)

	return tree.New(k, "", children...)
}

func (l *lowerer) lowerIf(st *ast.IfStmt) *tree.Node {
	cond := l.lowerExpr(st.Cond)
	then := tree.Body(kind.KindIf, l.lowerBlock(st.Body))

	children := []*tree.Node{cond, then}

	if st.Else != nil {
		switch e := st.Else.(type) {
		case *ast.IfStmt:
			children = append(children, l.lowerIf(e))
		default:
			elseBody := tree.Body(kind.KindElse, l.lowerStmt(e))
			children = append(children, tree.New(kind.KindElse, "", elseBody))
		}
	}

	return tree.New(kind.KindIf, "", children...)
}

func (l *lowerer) lowerFor(st *ast.ForStmt) *tree.Node {
	k := kind.KindForLoop
	if st.Init == nil && st.Post == nil {
		k = kind.KindWhileLoop
	}

	var children []*tree.Node

	if st.Init != nil {
		children = append(children, l.lowerStmt(st.Init))
	}

	if st.Cond != nil {
		children = append(children, l.lowerExpr(st.Cond))
	}

	if st.Post != nil {
		children = append(children, l.lowerStmt(st.Post))
	}

	children = append(children, tree.Body(k, l.lowerBlock(st.Body)))

	return tree.New(k, "", children...)
}

func (l *lowerer) lowerRange(st *ast.RangeStmt) *tree.Node {
	var children []*tree.Node

	if st.Key != nil {
		children = append(children, l.lowerExpr(st.Key))
	}

	if st.Value != nil {
		children = append(children, l.lowerExpr(st.Value))
	}

	children = append(children, l.lowerExpr(st.X))
	children = append(children, tree.Body(kind.KindRangeLoop, l.lowerBlock(st.Body)))

	return tree.New(kind.KindRangeLoop, "", children...)
}

func (l *lowerer) lowerSwitch(st *ast.SwitchStmt) *tree.Node {
	var children []*tree.Node

	if st.Init != nil {
		children = append(children, l.lowerStmt(st.Init))
	}

	if st.Tag != nil {
		children = append(children, l.lowerExpr(st.Tag))
	}

	for _, c := range st.Body.List {
		children = append(children, l.lowerCaseClause(c.(*ast.CaseClause)))
	}

	return tree.New(kind.KindSwitch, "", children...)
}

func (l *lowerer) lowerTypeSwitch(st *ast.TypeSwitchStmt) *tree.Node {
	var children []*tree.Node

	if st.Init != nil {
		children = append(children, l.lowerStmt(st.Init))
	}

	children = append(children, l.lowerStmt(st.Assign))

	for _, c := range st.Body.List {
		children = append(children, l.lowerCaseClause(c.(*ast.CaseClause)))
	}

	return tree.New(kind.KindTypeSwitch, "", children...)
}

func (l *lowerer) lowerCaseClause(c *ast.CaseClause) *tree.Node {
	children := l.lowerExprList(c.List)

	for _, s := range c.Body {
		if n := l.lowerStmt(s); n != nil {
			children = append(children, n)
		}
	}

	return tree.New(kind.KindCase, "", children...)
}

func (l *lowerer) lowerSelect(st *ast.SelectStmt) *tree.Node {
	var children []*tree.Node

	for _, c := range st.Body.List {
		comm := c.(*ast.CommClause)

		var commChildren []*tree.Node

		if comm.Comm != nil {
			commChildren = append(commChildren, l.lowerStmt(comm.Comm))
		}

		for _, s := range comm.Body {
			if n := l.lowerStmt(s); n != nil {
				commChildren = append(commChildren, n)
			}
		}

		children = append(children, tree.New(kind.KindCase, "", commChildren...))
	}

	return tree.New(kind.KindSelect, "", children...)
}

func (l *lowerer) lowerBranch(st *ast.BranchStmt) *tree.Node {
	var k kind.Kind

	switch st.Tok {
	case token.BREAK:
		k = kind.KindBreak
	case token.CONTINUE:
		k = kind.KindContinue
	default:
		k = kind.KindGoto
	}

	var children []*tree.Node
	if st.Label != nil {
		children = append(children, tree.Leaf(kind.KindIdentifier, st.Label.Name))
	}

	return tree.New(k, "", children...)
}

func (l *lowerer) lowerDecl(d ast.Decl) *tree.Node {
	gd, ok := d.(*ast.GenDecl)
	if !ok {
		return tree.New(kind.KindUnknown, "")
	}

	var k kind.Kind

	switch gd.Tok {
	case token.CONST:
		k = kind.KindConstDecl
	case token.TYPE:
		k = kind.KindTypeDecl
	default:
		k = kind.KindVarDecl
	}

	var children []*tree.Node

	for _, spec := range gd.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		for _, n := range vs.Names {
			children = append(children, tree.Leaf(kind.KindIdentifier, n.Name))
		}

		children = append(children, l.lowerExprList(vs.Values)...)
	}

	return tree.New(k, "", children...)
}

func (l *lowerer) lowerExprList(exprs []ast.Expr) []*tree.Node {
	out := make([]*tree.Node, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, l.lowerExpr(e))
	}

	return out
}

func (l *lowerer) lowerExpr(e ast.Expr) *tree.Node {
	switch ex := e.(type) {
	case *ast.Ident:
		return lowerIdent(ex)

	case *ast.BasicLit:
		return lowerBasicLit(ex)

	case *ast.BinaryExpr:
		return tree.New(binaryKind(ex.Op), "", l.lowerExpr(ex.X), l.lowerExpr(ex.Y))

	case *ast.UnaryExpr:
		return l.lowerUnary(ex)

	case *ast.StarExpr:
		return tree.New(kind.KindUnaryStar, "", l.lowerExpr(ex.X))

	case *ast.ParenExpr:
		return tree.New(kind.KindParen, "", l.lowerExpr(ex.X))

	case *ast.CallExpr:
		return l.lowerCall(ex)

	case *ast.SelectorExpr:
		return tree.New(kind.KindPropertyAccess, ex.Sel.Name, l.lowerExpr(ex.X))

	case *ast.IndexExpr:
		return tree.New(kind.KindElementAccess, "", l.lowerExpr(ex.X), l.lowerExpr(ex.Index))

	case *ast.IndexListExpr:
		children := []*tree.Node{l.lowerExpr(ex.X)}
		children = append(children, l.lowerExprList(ex.Indices)...)

		return tree.New(kind.KindGenericIdentifier, "", children...)

	case *ast.SliceExpr:
		return l.lowerSliceExpr(ex)

	case *ast.TypeAssertExpr:
		if ex.Type == nil {
			return tree.New(kind.KindTypeAssertion, "", l.lowerExpr(ex.X))
		}

		return tree.New(kind.KindTypeAssertion, "", l.lowerExpr(ex.X), l.lowerExpr(ex.Type))

	case *ast.CompositeLit:
		return l.lowerCompositeLit(ex)

	case *ast.KeyValueExpr:
		return tree.New(kind.KindParen, "", l.lowerExpr(ex.Key), l.lowerExpr(ex.Value))

	case *ast.FuncLit:
		return tree.New(kind.KindMethod, "", l.lowerBlock(ex.Body))

	case *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.StructType, *ast.InterfaceType, *ast.FuncType:
		return tree.Leaf(kind.KindIdentifier, exprString(ex))

	case nil:
		return tree.New(kind.KindEmpty, "")

	default:
		return tree.New(kind.KindUnknown, "")
	}
}

func lowerIdent(ex *ast.Ident) *tree.Node {
	switch ex.Name {
	case "true", "false":
		return tree.Leaf(kind.KindBoolLiteral, ex.Name)
	case "nil":
		return tree.Leaf(kind.KindNilLiteral, ex.Name)
	case "this", "self":
		return tree.Leaf(kind.KindReceiverIdentifier, ex.Name)
	default:
		return tree.Leaf(kind.KindIdentifier, ex.Name)
	}
}

func lowerBasicLit(ex *ast.BasicLit) *tree.Node {
	switch ex.Kind {
	case token.INT:
		return tree.Leaf(kind.KindIntLiteral, ex.Value)
	case token.FLOAT:
		return tree.Leaf(kind.KindFloatLiteral, ex.Value)
	case token.IMAG:
		return tree.Leaf(kind.KindImaginaryLiteral, ex.Value)
	case token.CHAR:
		return tree.Leaf(kind.KindRuneLiteral, ex.Value)
	default:
		return tree.Leaf(kind.KindStringLiteral, ex.Value)
	}
}

func binaryKind(op token.Token) kind.Kind {
	switch op {
	case token.ADD, token.SUB:
		return kind.KindAdditive
	case token.MUL, token.QUO, token.REM:
		return kind.KindMultiplicative
	case token.LAND, token.LOR:
		return kind.KindBinaryLogical
	case token.AND, token.OR, token.XOR, token.AND_NOT:
		return kind.KindBinaryBitwise
	case token.SHL, token.SHR:
		return kind.KindShift
	case token.EQL, token.NEQ:
		return kind.KindEquality
	case token.LSS, token.GTR, token.LEQ, token.GEQ:
		return kind.KindRelational
	default:
		return kind.KindUnknown
	}
}

func (l *lowerer) lowerUnary(ex *ast.UnaryExpr) *tree.Node {
	switch ex.Op {
	case token.NOT:
		return tree.New(kind.KindUnaryLogical, "", l.lowerExpr(ex.X))
	case token.AND:
		return tree.New(kind.KindUnaryAddr, "", l.lowerExpr(ex.X))
	case token.XOR:
		return tree.New(kind.KindUnaryBitwise, "", l.lowerExpr(ex.X))
	case token.ARROW:
		return tree.New(kind.KindCall, "recv", l.lowerExpr(ex.X))
	default:
		return tree.New(kind.KindUnaryArithmetic, "", l.lowerExpr(ex.X))
	}
}

func (l *lowerer) lowerCall(ex *ast.CallExpr) *tree.Node {
	if ident, ok := ex.Fun.(*ast.Ident); ok {
		switch ident.Name {
		case "panic":
			return tree.New(kind.KindPanic, "", l.lowerExprList(ex.Args)...)
		case "recover":
			return tree.New(kind.KindRecover, "")
		case "make":
			return tree.New(kind.KindMakeCall, "", l.lowerExprList(ex.Args)...)
		case "new":
			return tree.New(kind.KindNewCall, "", l.lowerExprList(ex.Args)...)
		}
	}

	children := append([]*tree.Node{l.lowerExpr(ex.Fun)}, l.lowerExprList(ex.Args)...)

	return tree.New(kind.KindCall, "", children...)
}

func (l *lowerer) lowerSliceExpr(ex *ast.SliceExpr) *tree.Node {
	children := []*tree.Node{l.lowerExpr(ex.X)}

	for _, sub := range []ast.Expr{ex.Low, ex.High, ex.Max} {
		if sub != nil {
			children = append(children, l.lowerExpr(sub))
		}
	}

	return tree.New(kind.KindElementAccess, "slice", children...)
}

func (l *lowerer) lowerCompositeLit(ex *ast.CompositeLit) *tree.Node {
	k := kind.KindCompositeLit

	switch ex.Type.(type) {
	case *ast.MapType:
		k = kind.KindMapLit
	case *ast.ArrayType:
		at := ex.Type.(*ast.ArrayType)
		if at.Len == nil {
			k = kind.KindSliceLit
		} else {
			k = kind.KindArrayLit
		}
	}

	return tree.New(k, "", l.lowerExprList(ex.Elts)...)
}

// exprString renders a type expression's source form for the rare cases
// (bare type literals used as values, e.g. in a type-switch case list)
// where the neutral tree needs a stand-in value. It intentionally covers
// only the common cases; anything else yields an empty string.
func exprString(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return exprString(t.X) + "." + t.Sel.Name
	case *ast.StarExpr:
		return "*" + exprString(t.X)
	case *ast.ArrayType:
		return "[]" + exprString(t.Elt)
	default:
		return ""
	}
}
