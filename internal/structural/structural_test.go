package structural_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dupscan/dupscan/internal/structural"
	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/tree"
)

func TestAnalyze_NilRootReturnsZeroValue(t *testing.T) {
	t.Parallel()

	f := structural.Analyze(nil)

	assert.Equal(t, 0, f.ControlFlowComplexity)
	assert.Empty(t, f.Identifiers)
}

func TestAnalyze_CountsLoopsAndConditionals(t *testing.T) {
	t.Parallel()

	body := tree.New(kind.KindBlock, "", tree.Leaf(kind.KindReturn, ""))
	loop := tree.New(kind.KindForLoop, "", body)
	ifStmt := tree.New(kind.KindIf, "", tree.Leaf(kind.KindBoolLiteral, "true"), body)
	root := tree.New(kind.KindBlock, "", loop, ifStmt)

	f := structural.Analyze(root)

	assert.Equal(t, 2, f.ControlFlowComplexity)
	assert.Equal(t, 1, f.ConditionalCount)
	assert.Equal(t, []kind.Kind{kind.KindForLoop}, f.LoopTypes)
}

func TestAnalyze_CountsCallsAndVariables(t *testing.T) {
	t.Parallel()

	call := tree.New(kind.KindCall, "", tree.Leaf(kind.KindIdentifier, "f"))
	decl := tree.New(kind.KindShortVarAssign, "", tree.Leaf(kind.KindIdentifier, "x"), call)
	root := tree.New(kind.KindBlock, "", decl)

	f := structural.Analyze(root)

	assert.Equal(t, 1, f.MethodCallCount)
	assert.Equal(t, 1, f.VariableCount)
}

func TestAnalyze_TracksIdentifiersAndLiteralsByValue(t *testing.T) {
	t.Parallel()

	root := tree.New(kind.KindBlock, "",
		tree.Leaf(kind.KindIdentifier, "x"),
		tree.Leaf(kind.KindIdentifier, "x"),
		tree.Leaf(kind.KindIntLiteral, "1"),
	)

	f := structural.Analyze(root)

	assert.Equal(t, 2, f.Identifiers["x"])
	assert.Equal(t, 1, f.Literals["1"])
}

func TestAnalyze_MaxNestingLevelTracksControlFlowDepth(t *testing.T) {
	t.Parallel()

	inner := tree.New(kind.KindIf, "", tree.Leaf(kind.KindBoolLiteral, "true"), tree.Leaf(kind.KindReturn, ""))
	outer := tree.New(kind.KindIf, "", tree.Leaf(kind.KindBoolLiteral, "true"), inner)
	root := tree.New(kind.KindBlock, "", outer)

	f := structural.Analyze(root)

	assert.Equal(t, 2, f.MaxNestingLevel)
}
