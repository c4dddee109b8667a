// Package scorer turns a raw APTED tree edit distance between two methods
// into a bounded [0,1] similarity score, applying the size and structural
// penalties of spec §4.6 on top of the base tree-structure-edit-distance
// normalization.
package scorer

import (
	"math"

	"github.com/dupscan/dupscan/internal/apted"
	"github.com/dupscan/dupscan/internal/structural"
	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/method"
)

// Options configures scoring. It mirrors the detector-level options block
// (spec §6) that a caller already holds; Options only carries the subset
// the scorer itself consults.
type Options struct {
	SizePenalty bool
	Apted       apted.Config
}

// DefaultOptions returns the spec's documented defaults.
func DefaultOptions() Options {
	return Options{
		SizePenalty: true,
		Apted:       apted.DefaultConfig(),
	}
}

// Similarity scores two method records against each other (spec §4.6),
// using internal/structural's analyzer to obtain each record's memoized
// structural features.
func Similarity(a, b *method.Record, opts Options) float64 {
	d := apted.Distance(a.Tree, b.Tree, opts.Apted)

	s1, s2 := a.Tree.Size(), b.Tree.Size()

	maxS := s1
	if s2 > maxS {
		maxS = s2
	}

	var tsed float64
	if maxS > 0 {
		tsed = 1 - d/float64(maxS)
		if tsed < 0 {
			tsed = 0
		}
	} else {
		tsed = 1
	}

	sim := tsed

	if opts.SizePenalty {
		sim = applySizeRatioFloor(sim, s1, s2, maxS)
		sim = applyShortFunctionPenalty(sim, a.LineCount, b.LineCount)
	}

	fa := a.Structural(structural.Analyze)
	fb := b.Structural(structural.Analyze)

	penalty := structuralPenalty(fa, fb, d, maxS, opts.Apted.RenameCost)

	return clamp01(sim * penalty)
}

func applySizeRatioFloor(sim float64, s1, s2, maxS int) float64 {
	if maxS == 0 {
		return sim
	}

	minS := s1
	if s2 < minS {
		minS = s2
	}

	r := float64(minS) / float64(maxS)

	switch {
	case r < 0.1:
		return sim * (r * 10)
	case r < 0.3:
		return sim * (0.7 + r)
	default:
		return sim
	}
}

func applyShortFunctionPenalty(sim float64, l1, l2 int) float64 {
	avg := float64(l1+l2) / 2

	if avg < 10 {
		return sim * (avg / 10)
	}

	return sim
}

func structuralPenalty(fa, fb *structural.Features, d float64, maxS int, renameCost float64) float64 {
	p := 1.0

	if diff := absInt(fa.ControlFlowComplexity - fb.ControlFlowComplexity); diff > 3 {
		p *= 0.80
	} else if diff > 1 {
		p *= 0.95
	}

	if len(fa.LoopTypes) > 0 && len(fb.LoopTypes) > 0 && !loopTypesEqual(fa.LoopTypes, fb.LoopTypes) {
		p *= 0.90
	}

	if absInt(fa.ConditionalCount-fb.ConditionalCount) > 2 {
		p *= 0.85
	}

	if callDiff := absInt(fa.MethodCallCount - fb.MethodCallCount); float64(callDiff) > 0.5*float64(maxInt(fa.MethodCallCount, fb.MethodCallCount)) {
		p *= 0.90
	}

	if varDiff := absInt(fa.VariableCount - fb.VariableCount); float64(varDiff) > 0.4*float64(maxInt(fa.VariableCount, fb.VariableCount)) {
		p *= 0.95
	}

	if absInt(fa.MaxNestingLevel-fb.MaxNestingLevel) > 2 {
		p *= 0.90
	}

	if maxS > 0 {
		editRatio := d / float64(maxS)
		if editRatio > 0.4 {
			p *= math.Pow(0.8, editRatio)
		}
	}

	v := 0.7*jaccardCounts(fa.Identifiers, fb.Identifiers) + 0.3*jaccardCounts(fa.Literals, fb.Literals)
	v *= 1 - renameCost

	if v < 0.3 {
		p *= 0.85
	} else if v < 0.5 {
		p *= 0.95
	}

	return clampRange(p, 0.1, 1.0)
}

// loopTypesEqual reports whether two loop-kind sequences are identical,
// order and length included — spec §4.6 treats any divergence in the
// sequence (not just the set) as a penalty trigger.
func loopTypesEqual(a, b []kind.Kind) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// jaccardCounts computes Jaccard similarity over the key sets of two
// count maps, ignoring counts — spec §4.6's J(ids1,ids2) operates on sets.
func jaccardCounts(a, b map[string]int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	inter, union := 0, 0

	for k := range a {
		union++
		if _, ok := b[k]; ok {
			inter++
		}
	}

	for k := range b {
		if _, ok := a[k]; !ok {
			union++
		}
	}

	if union == 0 {
		return 1.0
	}

	return float64(inter) / float64(union)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func clamp01(x float64) float64 {
	return clampRange(x, 0, 1)
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}
