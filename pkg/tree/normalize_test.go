package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/tree"
)

func TestBody_UnwrapsSingleStatementBlock(t *testing.T) {
	t.Parallel()

	ret := tree.Leaf(kind.KindReturn, "")
	block := tree.New(kind.KindBlock, "", ret)

	unwrapped := tree.Body(kind.KindIf, block)

	assert.Same(t, ret, unwrapped)
}

func TestBody_LeavesMultiStatementBlockAlone(t *testing.T) {
	t.Parallel()

	block := tree.New(kind.KindBlock, "", tree.Leaf(kind.KindReturn, ""), tree.Leaf(kind.KindReturn, ""))

	unwrapped := tree.Body(kind.KindIf, block)

	assert.Same(t, block, unwrapped)
}

func TestBody_LeavesNonBlockUnwrapParentAlone(t *testing.T) {
	t.Parallel()

	ret := tree.Leaf(kind.KindReturn, "")
	block := tree.New(kind.KindBlock, "", ret)

	unwrapped := tree.Body(kind.KindSwitch, block)

	assert.Same(t, block, unwrapped)
}

func TestBody_NilBodyReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, tree.Body(kind.KindIf, nil))
}
