package apted

// Arena is a grow-on-demand contiguous buffer with a stack-discipline
// allocate/deallocate interface (spec §4.4, §9). It backs the two-row
// dynamic program used to align children during a single pair's distance
// computation: Allocate is called once per row, Deallocate releases rows
// in strict LIFO order as recursion unwinds.
//
// Arena is not safe for concurrent use; each top-level [Distance] call
// owns its own Arena for the duration of that one pair comparison.
type Arena struct {
	buf []float64
	top int
}

// NewArena returns an Arena with capacity pre-reserved for cap0 float64s.
// cap0 may be zero; the buffer grows as needed regardless.
func NewArena(cap0 int) *Arena {
	return &Arena{buf: make([]float64, 0, cap0)}
}

// Allocate reserves the next n slots and returns them, zeroed.
func (a *Arena) Allocate(n int) []float64 {
	need := a.top + n
	if need > len(a.buf) {
		if need > cap(a.buf) {
			grown := make([]float64, need, need*2)
			copy(grown, a.buf)
			a.buf = grown
		} else {
			a.buf = a.buf[:need]
		}
	}

	row := a.buf[a.top:need]
	for i := range row {
		row[i] = 0
	}

	a.top = need

	return row
}

// Deallocate releases the most recently allocated n slots. Callers must
// release allocations in the exact reverse order they were made; Arena
// does not validate this (the cost of doing so would defeat the point of
// avoiding per-call allocation).
func (a *Arena) Deallocate(n int) {
	a.top -= n
	if a.top < 0 {
		a.top = 0
	}
}

// Reset releases the entire arena back to empty, for reuse across pairs
// when an Arena is itself pooled.
func (a *Arena) Reset() {
	a.top = 0
}
