package kind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dupscan/dupscan/pkg/kind"
)

func TestCategoryDistance_SameCategoryIsZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, kind.CategoryDistance(kind.CategoryLoopStatement, kind.CategoryLoopStatement))
}

func TestCategoryDistance_IsSymmetric(t *testing.T) {
	t.Parallel()

	d1 := kind.CategoryDistance(kind.CategoryStringLiteral, kind.CategoryCharLiteral)
	d2 := kind.CategoryDistance(kind.CategoryCharLiteral, kind.CategoryStringLiteral)

	assert.Equal(t, d1, d2)
	assert.Equal(t, 0.10, d1)
}

func TestCategoryDistance_UnlistedPairDefaultsToMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, kind.CategoryDistance(kind.CategoryNumericLiteral, kind.CategoryLoopStatement))
}

func TestKindDistance_SameKindIsZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, kind.KindDistance(kind.KindForLoop, kind.KindForLoop))
}

func TestKindDistance_DerivesFromCategoryDistance(t *testing.T) {
	t.Parallel()

	got := kind.KindDistance(kind.KindForLoop, kind.KindWhileLoop)
	want := kind.CategoryDistance(kind.CategoryOf(kind.KindForLoop), kind.CategoryOf(kind.KindWhileLoop))

	assert.Equal(t, want, got)
}
