// Package apted computes ordered tree edit distance between two
// pkg/tree trees, APTED-style: memoized recursion over node pairs plus a
// two-row dynamic program for aligning children (spec §4.4).
package apted

// Config holds the edit-cost parameters. Zero-value Config is invalid;
// use [DefaultConfig].
type Config struct {
	RenameCost         float64
	DeleteCost         float64
	InsertCost         float64
	KindDistanceWeight float64
}

// DefaultConfig returns the engine defaults from spec §6's options block.
func DefaultConfig() Config {
	return Config{
		RenameCost:         0.3,
		DeleteCost:         1.0,
		InsertCost:         1.0,
		KindDistanceWeight: 0.5,
	}
}
