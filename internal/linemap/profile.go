package linemap

import (
	"math"
	"strings"
)

// Tokenize returns the maximal runs of [A-Za-z0-9_] in text, lower-cased.
func Tokenize(text string) []string {
	var tokens []string
	start := -1
	for i := 0; i < len(text); i++ {
		if isTokenByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, strings.ToLower(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, strings.ToLower(text[start:]))
	}
	return tokens
}

func isTokenByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// Profile is a frequency multiset of terms with its Euclidean norm cached.
type Profile struct {
	counts map[string]int
	norm   float64
}

// NewProfile counts the occurrences of each term.
func NewProfile(terms []string) Profile {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return newProfile(counts)
}

// GramProfile counts the character bigrams of each token. A one-character
// token contributes itself.
func GramProfile(tokens []string) Profile {
	counts := make(map[string]int)
	for _, t := range tokens {
		if len(t) < 2 {
			counts[t]++
			continue
		}
		for i := 0; i+2 <= len(t); i++ {
			counts[t[i:i+2]]++
		}
	}
	return newProfile(counts)
}

func newProfile(counts map[string]int) Profile {
	var sum float64
	for _, c := range counts {
		sum += float64(c * c)
	}
	return Profile{counts: counts, norm: math.Sqrt(sum)}
}

// Len returns the number of distinct terms.
func (p Profile) Len() int { return len(p.counts) }

// Count returns how often term occurs.
func (p Profile) Count(term string) int { return p.counts[term] }

// Merge returns the multiset union (counts summed) of the given profiles.
func Merge(profiles ...Profile) Profile {
	counts := make(map[string]int)
	for _, p := range profiles {
		for t, c := range p.counts {
			counts[t] += c
		}
	}
	return newProfile(counts)
}

// Cosine returns dot(p, q) / (|p| * |q|), or 0 when either profile is empty or
// they share no term.
func Cosine(p, q Profile) float64 {
	if p.norm == 0 || q.norm == 0 {
		return 0
	}
	small, large := p, q
	if len(small.counts) > len(large.counts) {
		small, large = large, small
	}
	var dot int
	for t, c := range small.counts {
		dot += c * large.counts[t]
	}
	if dot == 0 {
		return 0
	}
	return float64(dot) / (p.norm * q.norm)
}

// contextProfile merges the profiles of lines [i-window, i+window], clamped to
// the slice bounds.
func contextProfile(profiles []Profile, i, window int) Profile {
	lo := max(i-window, 0)
	hi := min(i+window, len(profiles)-1)
	return Merge(profiles[lo : hi+1]...)
}
