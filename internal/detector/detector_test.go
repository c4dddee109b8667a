package detector_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupscan/dupscan/internal/detector"
	"github.com/dupscan/dupscan/internal/fingerprint"
	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/method"
	"github.com/dupscan/dupscan/pkg/tree"
)

func addFn(a, b string) *tree.Node {
	return tree.New(kind.KindMethod, "",
		tree.New(kind.KindBlock, "",
			tree.New(kind.KindReturn, "", tree.New(kind.KindAdditive, "", tree.Leaf(kind.KindIdentifier, a), tree.Leaf(kind.KindIdentifier, b)))),
	)
}

func methodFile(path, name string, lines int, t *tree.Node) *method.File {
	info := method.Info{
		Name:      name,
		FilePath:  path,
		StartLine: 1,
		EndLine:   lines,
		Tree:      t,
	}

	return &method.File{Path: path, Methods: []*method.Record{method.NewRecord(info, fingerprint.Build(t))}}
}

func TestDetect_IdenticalMethodsAcrossFilesFormOneGroup(t *testing.T) {
	t.Parallel()

	f1 := methodFile("a.go", "Add", 12, addFn("a", "b"))
	f2 := methodFile("b.go", "Add", 12, addFn("a", "b"))

	groups := detector.Detect([]*method.File{f1, f2}, detector.DefaultOptions(), 0.87)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Entries, 1)
	assert.Greater(t, groups[0].Entries[0].Similarity, 0.95)
}

func TestDetect_UnrelatedMethodsProduceNoGroup(t *testing.T) {
	t.Parallel()

	add := methodFile("a.go", "Add", 12, addFn("a", "b"))

	loopBody := tree.New(kind.KindBlock, "", tree.New(kind.KindCall, "", tree.Leaf(kind.KindIdentifier, "Append")))
	loop := tree.New(kind.KindMethod, "",
		tree.New(kind.KindBlock, "", tree.New(kind.KindForLoop, "", tree.Leaf(kind.KindIntLiteral, "0"), loopBody)))
	unrelated := methodFile("b.go", "BuildList", 20, loop)

	groups := detector.Detect([]*method.File{add, unrelated}, detector.DefaultOptions(), 0.87)

	assert.Empty(t, groups)
}

func TestDetect_MinLinesFilterExcludesShortMethods(t *testing.T) {
	t.Parallel()

	short := methodFile("a.go", "Add", 3, addFn("a", "b"))
	long := methodFile("b.go", "Add", 7, addFn("a", "b"))

	opts := detector.DefaultOptions()
	opts.MinLines = 5

	groups := detector.Detect([]*method.File{short, long}, opts, 0.87)

	assert.Empty(t, groups)
}

func TestDetect_MethodNamePatternFiltersCandidates(t *testing.T) {
	t.Parallel()

	sum := methodFile("a.go", "CalculateSum", 12, addFn("a", "b"))
	product := methodFile("b.go", "CalculateProduct", 12, addFn("a", "c"))
	processData := methodFile("c.go", "ProcessData", 12, addFn("x", "y"))

	opts := detector.DefaultOptions()
	opts.IncludeMethodPattern = regexp.MustCompile(`^Calculate.*`)

	groups := detector.Detect([]*method.File{sum, product, processData}, opts, 0.5)

	for _, g := range groups {
		assert.NotEqual(t, "ProcessData", g.Representative.Name)

		for _, e := range g.Entries {
			assert.NotEqual(t, "ProcessData", e.Method.Name)
		}
	}
}

func TestDetect_GroupsOrderedByDescendingTotalImpact(t *testing.T) {
	t.Parallel()

	a1 := methodFile("a1.go", "Add", 12, addFn("a", "b"))
	a2 := methodFile("a2.go", "Add", 12, addFn("a", "b"))
	a3 := methodFile("a3.go", "Add", 40, addFn("p", "q"))
	a4 := methodFile("a4.go", "Add", 40, addFn("p", "q"))

	groups := detector.Detect([]*method.File{a1, a2, a3, a4}, detector.DefaultOptions(), 0.87)

	require.Len(t, groups, 2)

	for i := 1; i < len(groups); i++ {
		assert.GreaterOrEqual(t, groups[i-1].TotalImpact, groups[i].TotalImpact)
	}
}

func TestDetect_StatsReportsPipelineCounts(t *testing.T) {
	t.Parallel()

	f1 := methodFile("a.go", "Add", 12, addFn("a", "b"))
	f2 := methodFile("b.go", "Add", 12, addFn("a", "b"))
	f3 := methodFile("c.go", "Add", 12, addFn("x", "y"))

	opts := detector.DefaultOptions()
	opts.Stats = &detector.Stats{}

	groups := detector.Detect([]*method.File{f1, f2, f3}, opts, 0.87)

	require.Len(t, groups, 1)
	assert.Equal(t, 3, opts.Stats.MethodsEligible)
	assert.Equal(t, 3, opts.Stats.PairsConsidered)
	assert.GreaterOrEqual(t, opts.Stats.PairsAdmitted, 1)
	assert.Equal(t, opts.Stats.PairsAdmitted, opts.Stats.PairsScored)
}

func TestDetect_StatsLeftNilIsUntouched(t *testing.T) {
	t.Parallel()

	f1 := methodFile("a.go", "Add", 12, addFn("a", "b"))

	opts := detector.DefaultOptions()

	assert.NotPanics(t, func() {
		detector.Detect([]*method.File{f1}, opts, 0.87)
	})
}

func TestDetect_IsDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	files := []*method.File{
		methodFile("a.go", "Add", 12, addFn("a", "b")),
		methodFile("b.go", "Add", 12, addFn("a", "b")),
		methodFile("c.go", "Add", 12, addFn("x", "y")),
	}

	opts := detector.DefaultOptions()

	g1 := detector.Detect(files, opts, 0.87)
	g2 := detector.Detect(files, opts, 0.87)

	require.Equal(t, len(g1), len(g2))

	for i := range g1 {
		assert.Equal(t, g1[i].Representative.FullName, g2[i].Representative.FullName)
		assert.Equal(t, len(g1[i].Entries), len(g2[i].Entries))
	}
}
