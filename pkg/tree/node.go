// Package tree provides the immutable, ordered, labeled tree used by the
// similarity engine as its neutral representation of a method body.
package tree

import (
	"sync/atomic"

	"github.com/dupscan/dupscan/pkg/kind"
)

// nextID is the process-wide node ID allocator. Its only contract is
// uniqueness within a run; it is never reset and carries no meaning beyond
// "this value was never handed out before".
var nextID atomic.Int64

// Node is one element of an ordered labeled tree. A Node is immutable after
// [New] returns: nothing later mutates Kind, Value, ID, or Children.
// Node IDs are cheap to compare (plain int64), which matters because
// internal/apted uses pairs of node IDs as memoization keys.
type Node struct {
	id       int64
	kind     kind.Kind
	value    string
	children []*Node
	size     int // subtree size, 1 + sum(children sizes); cached at construction.
}

// New constructs a leaf or internal node with the given kind, value, and
// already-built children. Value should be empty unless the node is an
// identifier, a literal, or a predeclared type token — that is the only
// place the scorer's value-similarity penalty (§4.6) looks.
//
// New assigns a fresh globally-unique ID and computes/caches the subtree
// size in one pass over children; callers should build trees bottom-up
// (children before parents), which every extractor naturally does.
func New(k kind.Kind, value string, children ...*Node) *Node {
	size := 1
	for _, c := range children {
		size += c.size
	}

	kids := children
	if len(kids) == 0 {
		kids = nil
	}

	return &Node{
		id:       nextID.Add(1),
		kind:     k,
		value:    value,
		children: kids,
		size:     size,
	}
}

// Leaf is a convenience for New(k, value) with no children.
func Leaf(k kind.Kind, value string) *Node {
	return New(k, value)
}

// ID returns the node's globally unique identifier.
func (n *Node) ID() int64 { return n.id }

// Kind returns the node's syntactic kind.
func (n *Node) Kind() kind.Kind { return n.kind }

// Value returns the node's literal/identifier value, or "" if none.
func (n *Node) Value() string { return n.value }

// Children returns the node's ordered children. Callers must not mutate
// the returned slice.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns len(Children()) without allocating a slice header
// copy in hot loops.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Size returns the cached subtree size: 1 + the sum of the subtree sizes
// of all children.
func (n *Node) Size() int { return n.size }

// Walk calls visit for every node in the subtree rooted at n, pre-order.
// If visit returns false for a node, Walk does not descend into that
// node's children but continues with its siblings.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}

	if !visit(n) {
		return
	}

	for _, c := range n.children {
		c.Walk(visit)
	}
}

// Count returns the number of nodes in the subtree for which pred returns
// true.
func (n *Node) Count(pred func(*Node) bool) int {
	count := 0

	n.Walk(func(cur *Node) bool {
		if pred(cur) {
			count++
		}

		return true
	})

	return count
}
