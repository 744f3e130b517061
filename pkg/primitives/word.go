package primitives

import "fmt"

// Word is a lowercase a-z word occupying one row of a puzzle.
type Word string

// CheckWord validates that w is non-empty lowercase ASCII of the given
// length. A length of 0 skips the length check.
func CheckWord(w Word, length int) error {
	if len(w) == 0 {
		return fmt.Errorf("word is empty")
	}
	if length > 0 && len(w) != length {
		return fmt.Errorf("word %q has length %d, want %d", w, len(w), length)
	}
	for _, r := range string(w) {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("word %q contains non-lowercase letter %q", w, r)
		}
	}
	return nil
}
