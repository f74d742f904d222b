package linemap

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// Simhash fingerprints text: each token's xxHash64 votes +1 or -1 on each of
// the 64 bit positions, and a bit is set when its vote total is non-negative.
// xxHash64 is unseeded, so fingerprints are stable across processes.
func Simhash(text string) uint64 {
	return simhashTokens(Tokenize(text))
}

func simhashTokens(tokens []string) uint64 {
	var votes [64]int
	for _, t := range tokens {
		h := xxhash.Sum64String(t)
		for b := 0; b < 64; b++ {
			if h&(1<<uint(b)) != 0 {
				votes[b]++
			} else {
				votes[b]--
			}
		}
	}
	var out uint64
	for b, v := range votes {
		if v >= 0 {
			out |= 1 << uint(b)
		}
	}
	return out
}

// Hamming returns the number of differing bits of a and b.
func Hamming(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}
