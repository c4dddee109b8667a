package fingerprint

import "github.com/dupscan/dupscan/pkg/kind"

// kindWeight assigns the per-kind importance factor used by
// [HistogramSimilarity] (spec §4.3). Kinds not listed fall back to the
// "other" weight.
var kindWeight = map[kind.Kind]float64{
	// Control flow: 2.0.
	kind.KindForLoop: 2.0, kind.KindRangeLoop: 2.0, kind.KindWhileLoop: 2.0,
	kind.KindIf: 2.0, kind.KindBreak: 2.0, kind.KindContinue: 2.0,
	kind.KindReturn: 2.0, kind.KindGoto: 2.0, kind.KindLabel: 2.0,

	// Switch / ternary: 1.8.
	kind.KindSwitch: 1.8, kind.KindTypeSwitch: 1.8, kind.KindSelect: 1.8,
	kind.KindCase: 1.8, kind.KindConditionalExpr: 1.8,

	// Method / ctor / local-fn declarations: 1.5.
	kind.KindFuncDecl: 1.5,

	// Invocation / object-creation: 1.3.
	kind.KindCall: 1.3, kind.KindCompositeLit: 1.3, kind.KindMapLit: 1.3,
	kind.KindSliceLit: 1.3, kind.KindArrayLit: 1.3, kind.KindMakeCall: 1.3, kind.KindNewCall: 1.3,

	// try/throw analogue (defer/panic/recover): 1.5.
	kind.KindDefer: 1.5, kind.KindPanic: 1.5, kind.KindRecover: 1.5,

	// Arithmetic binops: 1.2.
	kind.KindAdditive: 1.2, kind.KindMultiplicative: 1.2, kind.KindBinaryBitwise: 1.2, kind.KindShift: 1.2,

	// Comparison: 1.1.
	kind.KindEquality: 1.1, kind.KindRelational: 1.1, kind.KindTypeCheck: 1.1,

	// Assignment / logical: 1.0.
	kind.KindSimpleAssign: 1.0, kind.KindCompoundAssign: 1.0, kind.KindShortVarAssign: 1.0,
	kind.KindBinaryLogical: 1.0, kind.KindUnaryLogical: 1.0,

	// Element / array: 0.9.
	kind.KindElementAccess: 0.9,

	// Var declarations: 0.8.
	kind.KindVarDecl: 0.8, kind.KindParamDecl: 0.8, kind.KindConstDecl: 0.8,
	kind.KindFieldDecl: 0.8, kind.KindTypeDecl: 0.8,

	// Identifiers / primitive literals: 0.5.
	kind.KindIdentifier: 0.5, kind.KindQualifiedIdentifier: 0.5, kind.KindGenericIdentifier: 0.5,
	kind.KindReceiverIdentifier: 0.5, kind.KindIntLiteral: 0.5, kind.KindFloatLiteral: 0.5,
	kind.KindImaginaryLiteral: 0.5, kind.KindStringLiteral: 0.5, kind.KindRuneLiteral: 0.5,
	kind.KindBoolLiteral: 0.5, kind.KindNilLiteral: 0.5,
}

const otherKindWeight = 0.3

func weightOf(k kind.Kind) float64 {
	if w, ok := kindWeight[k]; ok {
		return w
	}

	return otherKindWeight
}

// HistogramSimilarity is a diagnostic-only weighted, normalized L1
// similarity between two fingerprints' node-kind histograms (spec §4.3).
// It is not used by the admission predicate or the scorer; it exists so
// hosts can explain/debug why two methods were or weren't grouped.
func HistogramSimilarity(a, b *Fingerprint) float64 {
	seen := make(map[kind.Kind]bool)

	var weightedDiff, totalWeight float64

	accumulate := func(k kind.Kind) {
		if seen[k] {
			return
		}

		seen[k] = true

		c1 := float64(a.histogram[k])
		c2 := float64(b.histogram[k])

		maxC := c1
		if c2 > maxC {
			maxC = c2
		}

		if maxC == 0 {
			return
		}

		w := weightOf(k)
		diff := abs(c1-c2) / maxC

		weightedDiff += diff * w
		totalWeight += w
	}

	for k := range a.histogram {
		accumulate(k)
	}

	for k := range b.histogram {
		accumulate(k)
	}

	if totalWeight == 0 {
		return 1.0
	}

	return 1.0 - weightedDiff/totalWeight
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
