package apted

import (
	"github.com/dupscan/dupscan/pkg/kind"
	"github.com/dupscan/dupscan/pkg/tree"
)

// Distance computes the ordered tree edit distance between t1 and t2
// under cfg (spec §4.4). It acquires a memo table from the shared pool
// and a fresh per-call arena, and always returns the memo table to the
// pool (cleared) before returning — memoization state never leaks
// between calls.
func Distance(t1, t2 *tree.Node, cfg Config) float64 {
	if t1 == nil && t2 == nil {
		return 0
	}

	memo := globalMemoPool.get()
	defer globalMemoPool.put(memo)

	size := t1.Size()
	if t2.Size() > size {
		size = t2.Size()
	}

	arena := NewArena(2 * (size + 1))

	return distance(t1, t2, cfg, memo, arena)
}

// rho is the node-pair substitution cost (spec §4.4).
func rho(n1, n2 *tree.Node, cfg Config) float64 {
	k1, k2 := n1.Kind(), n2.Kind()

	if k1 != k2 {
		return 1 + cfg.KindDistanceWeight*kind.KindDistance(k1, k2)
	}

	if cfg.RenameCost > 0 && n1.Value() != n2.Value() {
		return cfg.RenameCost
	}

	return 0
}

func distance(n1, n2 *tree.Node, cfg Config, memo *memoTable, arena *Arena) float64 {
	if v, ok := memo.get(n1.ID(), n2.ID()); ok {
		return v
	}

	var result float64

	leaf1, leaf2 := n1.IsLeaf(), n2.IsLeaf()

	switch {
	case leaf1 && leaf2:
		result = rho(n1, n2, cfg)
	case leaf1 && !leaf2:
		result = cfg.DeleteCost*float64(n2.Size()) - cfg.DeleteCost + rho(n1, n2, cfg)
	case !leaf1 && leaf2:
		result = cfg.InsertCost*float64(n1.Size()) - cfg.InsertCost + rho(n1, n2, cfg)
	default:
		result = rho(n1, n2, cfg) + childrenDistance(n1.Children(), n2.Children(), cfg, memo, arena)
	}

	memo.set(n1.ID(), n2.ID(), result)

	return result
}

// childrenDistance implements the two-row dynamic program of spec §4.4
// that aligns the ordered children of two internal nodes.
func childrenDistance(a, b []*tree.Node, cfg Config, memo *memoTable, arena *Arena) float64 {
	m, n := len(a), len(b)

	deleteCost, insertCost := cfg.DeleteCost, cfg.InsertCost

	if n > m {
		a, b = b, a
		m, n = n, m
		deleteCost, insertCost = insertCost, deleteCost
	}

	prevRow := arena.Allocate(n + 1)
	currRow := arena.Allocate(n + 1)

	defer arena.Deallocate(n + 1)
	defer arena.Deallocate(n + 1)

	prevRow[0] = 0
	for j := 1; j <= n; j++ {
		prevRow[j] = float64(j) * insertCost
	}

	for i := 1; i <= m; i++ {
		currRow[0] = float64(i) * deleteCost

		for j := 1; j <= n; j++ {
			del := prevRow[j] + deleteCost*float64(a[i-1].Size())
			ins := currRow[j-1] + insertCost*float64(b[j-1].Size())
			rep := prevRow[j-1] + distance(a[i-1], b[j-1], cfg, memo, arena)

			currRow[j] = minOf3(del, ins, rep)
		}

		prevRow, currRow = currRow, prevRow
	}

	return prevRow[n]
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}
