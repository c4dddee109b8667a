// Package fingerprint computes the cheap per-method admission summary
// used to avoid running the expensive tree-edit-distance engine on pairs
// that cannot plausibly be similar (spec §4.3).
package fingerprint

import (
	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/method"
	"github.com/dupscan/dupscan/pkg/tree"
)

// Fingerprint is a 128-bit Bloom filter plus a node-kind histogram, built
// once per method at ingestion and never mutated afterward.
type Fingerprint struct {
	bits      bloom128
	histogram map[kind.Kind]int
}

// Build walks root once and returns its fingerprint. A nil root produces
// an empty fingerprint (zero set bits), which — per the admission
// predicate — is always considered a possible match.
func Build(root *tree.Node) *Fingerprint {
	fp := &Fingerprint{histogram: make(map[kind.Kind]int)}

	if root == nil {
		return fp
	}

	root.Walk(func(n *tree.Node) bool {
		fp.histogram[n.Kind()]++

		if v := n.Value(); v != "" {
			fp.bits.addValue(v)
		} else {
			fp.bits.addKind(kind.Code(n.Kind()))
		}

		return true
	})

	return fp
}

// MightBeSimilar implements the admission predicate of spec §4.3.
//
// This predicate is deliberately permissive — it is documented in spec §9
// as "nearly always-accept except for disjoint fingerprints". That
// behavior is preserved here intentionally, not fixed: the third branch
// falls through to true whenever the intersection is non-empty, which for
// any two non-trivial methods sharing even a single identifier or kind is
// almost always the case. Treat this as a prefilter, never as a decision.
func (fp *Fingerprint) MightBeSimilar(other method.Fingerprint, tau float64) bool {
	o, ok := other.(*Fingerprint)
	if !ok || o == nil {
		return true
	}

	popA := fp.bits.popcount()
	popB := o.bits.popcount()

	if popA == 0 || popB == 0 {
		return true
	}

	maxPop := popA
	if popB > maxPop {
		maxPop = popB
	}

	intersection := fp.bits.and(&o.bits)
	popIntersection := intersection.popcount()

	if float64(popIntersection)/float64(maxPop) > tau {
		return true
	}

	return popIntersection > 0
}

// Histogram returns the node-kind counts. Callers must not mutate the
// returned map.
func (fp *Fingerprint) Histogram() map[kind.Kind]int {
	return fp.histogram
}
