package fingerprint

import "math/bits"

// bloom128 is a fixed-size, 128-bit Bloom filter. Unlike pkg/alg-style
// general-purpose filters sized for n expected elements, a method
// fingerprint's filter size is part of the spec's contract (spec §4.3):
// exactly 128 bits, two words, no resizing.
type bloom128 struct {
	words [2]uint64
}

// setBit sets bit position pos (0..127).
func (b *bloom128) setBit(pos uint64) {
	pos &= 127
	b.words[pos/64] |= 1 << (pos % 64)
}

// popcount returns the number of set bits.
func (b *bloom128) popcount() int {
	return bits.OnesCount64(b.words[0]) + bits.OnesCount64(b.words[1])
}

// and returns the bitwise AND of b and other, as a new filter.
func (b *bloom128) and(other *bloom128) bloom128 {
	return bloom128{words: [2]uint64{b.words[0] & other.words[0], b.words[1] & other.words[1]}}
}

// multiplicativeHash computes a polynomial (Horner) hash of data using the
// given multiplier, per spec §4.3's "three independent multiplicative
// hashes using multipliers {31, 37, 41}".
func multiplicativeHash(data []byte, multiplier uint64) uint64 {
	var h uint64

	for _, c := range data {
		h = h*multiplier + uint64(c)
	}

	return h
}

// valueMultipliers are the three multipliers the spec mandates for hashing
// a node's Value into the filter.
var valueMultipliers = [3]uint64{31, 37, 41}

// addValue inserts a non-empty node value into the filter using all three
// multiplicative hashes.
func (b *bloom128) addValue(value string) {
	data := []byte(value)
	for _, m := range valueMultipliers {
		b.setBit(multiplicativeHash(data, m) % 128)
	}
}

// kindHashMultiplier and kindHashOffset implement spec §4.3's rule for
// nodes with an empty value: "hashing its numeric code with multiplier 31
// and offset 0x9e3779b9, setting one bit".
const (
	kindHashMultiplier = 31
	kindHashOffset     = 0x9e3779b9
)

// addKind inserts a node's numeric kind code into the filter, setting
// exactly one bit.
func (b *bloom128) addKind(code int) {
	h := uint64(code)*kindHashMultiplier + kindHashOffset
	b.setBit(h % 128)
}
