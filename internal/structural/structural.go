// Package structural computes one-pass structural features of a method's
// tree: control-flow complexity, loop shapes, identifier/literal
// multisets, and maximum nesting depth.
package structural

import (
	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/tree"
)

// Features holds the structural summary of one method, computed in a
// single depth-first traversal (spec §4.5).
type Features struct {
	ControlFlowComplexity int
	LoopTypes              []kind.Kind
	ConditionalCount       int
	MethodCallCount        int
	VariableCount          int
	MaxNestingLevel        int
	Identifiers            map[string]int
	Literals               map[string]int
}

var loopKinds = map[kind.Kind]bool{
	kind.KindForLoop:   true,
	kind.KindRangeLoop: true,
	kind.KindWhileLoop: true,
}

var literalKinds = map[kind.Kind]bool{
	kind.KindStringLiteral: true,
	kind.KindIntLiteral:    true,
	kind.KindFloatLiteral:  true,
	kind.KindImaginaryLiteral: true,
	kind.KindRuneLiteral:   true,
	kind.KindBoolLiteral:   true,
}

var identifierKinds = map[kind.Kind]bool{
	kind.KindIdentifier:          true,
	kind.KindQualifiedIdentifier: true,
	kind.KindGenericIdentifier:   true,
	kind.KindReceiverIdentifier:  true,
	kind.KindPropertyAccess:      true,
}

var variableDeclKinds = map[kind.Kind]bool{
	kind.KindVarDecl:        true,
	kind.KindShortVarAssign: true,
	kind.KindParamDecl:      true,
}

// Analyze walks root once and returns its structural features. It is safe
// to call concurrently on different trees; a single call is not
// re-entrant-safe on the same Features value, but Analyze always
// allocates a fresh one.
func Analyze(root *tree.Node) *Features {
	f := &Features{
		Identifiers: make(map[string]int),
		Literals:    make(map[string]int),
	}

	if root == nil {
		return f
	}

	walk(root, 0, f)

	return f
}

func walk(n *tree.Node, depth int, f *Features) {
	if depth > f.MaxNestingLevel {
		f.MaxNestingLevel = depth
	}

	k := n.Kind()

	switch {
	case loopKinds[k]:
		f.ControlFlowComplexity++
		f.LoopTypes = append(f.LoopTypes, k)
	case k == kind.KindIf || k == kind.KindConditionalExpr:
		f.ControlFlowComplexity++
		f.ConditionalCount++
	case k == kind.KindSwitch || k == kind.KindTypeSwitch:
		f.ControlFlowComplexity += 2
		f.ConditionalCount++
	case k == kind.KindDefer || k == kind.KindPanic || k == kind.KindRecover:
		f.ControlFlowComplexity += 2
	}

	if k == kind.KindCall {
		f.MethodCallCount++
	}

	if variableDeclKinds[k] {
		f.VariableCount++
	}

	if identifierKinds[k] && n.Value() != "" {
		f.Identifiers[n.Value()]++
	}

	if literalKinds[k] && n.Value() != "" {
		f.Literals[n.Value()]++
	}

	nextDepth := depth
	if nestsDeeper(k) {
		nextDepth = depth + 1
	}

	for _, c := range n.Children() {
		walk(c, nextDepth, f)
	}
}

// nestsDeeper reports whether entering a node of this kind counts as one
// level of nesting for MaxNestingLevel purposes. Structural/grouping nodes
// (blocks, parens) do not add nesting on their own — their control-flow
// parent already did.
func nestsDeeper(k kind.Kind) bool {
	switch k {
	case kind.KindForLoop, kind.KindRangeLoop, kind.KindWhileLoop,
		kind.KindIf, kind.KindElse, kind.KindSwitch, kind.KindTypeSwitch, kind.KindSelect:
		return true
	default:
		return false
	}
}
