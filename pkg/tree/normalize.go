package tree

import "github.com/dupscan/dupscan/pkg/kind"

// blockUnwrapParents is the closed set of control-flow kinds whose
// controlled statement is eligible for block elision (spec §4.1): a
// braced single-statement body and its unbraced equivalent must produce
// identical trees.
var blockUnwrapParents = map[kind.Kind]bool{
	kind.KindIf:        true,
	kind.KindElse:      true,
	kind.KindWhileLoop: true,
	kind.KindForLoop:   true,
	kind.KindRangeLoop: true,
}

// Body returns the tree to attach as the controlled statement of a node of
// kind parentKind, applying the block-unwrap normalization: if body is a
// Block with exactly one child and parentKind is one of the control-flow
// kinds that carry a single controlled statement, the block is elided and
// its sole child is returned instead. Every other body is returned
// unchanged.
//
// Extractors must call Body (not New) when attaching an if/else/loop's
// controlled statement, so that `if (x) s;` and `if (x) { s; }` normalize
// to the same tree and therefore score similarity 1.0 against each other.
func Body(parentKind kind.Kind, body *Node) *Node {
	if body == nil {
		return nil
	}

	if body.kind != kind.KindBlock || body.NumChildren() != 1 {
		return body
	}

	if !blockUnwrapParents[parentKind] {
		return body
	}

	return body.children[0]
}
