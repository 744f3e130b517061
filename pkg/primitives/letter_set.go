package primitives

import (
	"math/bits"
	"strings"
)

// LetterSet efficiently represents a set of letters 'a' through 'z'.
//
// The zero value is the empty set.
type LetterSet struct {
	mask uint32
}

// Add adds a letter to the set. Letters outside 'a'..'z' are ignored.
func (s *LetterSet) Add(r rune) {
	if r < 'a' || r > 'z' {
		return
	}
	s.mask |= 1 << uint(r-'a')
}

// AddAll adds all letters from another set to this set.
func (s *LetterSet) AddAll(other LetterSet) {
	s.mask |= other.mask
}

// Contains reports whether the set contains the given letter.
func (s LetterSet) Contains(r rune) bool {
	if r < 'a' || r > 'z' {
		return false
	}
	return s.mask&(1<<uint(r-'a')) != 0
}

// Count returns the number of letters in the set.
func (s LetterSet) Count() int {
	return bits.OnesCount32(s.mask)
}

func (s LetterSet) String() string {
	var sb strings.Builder
	for r := 'a'; r <= 'z'; r++ {
		if s.Contains(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
