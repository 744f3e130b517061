// Package puzzle parses crosswordle.vercel.app puzzle definitions, e.g.
// "v2-0,9,99,20,20,242-x,x,x,x,x,2x" or a full share URL carrying the same
// string in its "puzzle" query parameter.
//
// The middle section lists each row's coloring as a decimal ternary number,
// top row first. The last section gives per-row letter hints: "x" for none,
// otherwise <index><letter> pairs ("2x" pins the letter x at column 2).
package puzzle

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"crosswarped.com/cwsolve/pkg/primitives"
)

// LetterAt pins a letter to a column of a row.
type LetterAt struct {
	Index  int
	Letter byte
}

// Hint is the set of pinned letters for one row. Empty means no hint.
type Hint []LetterAt

// Puzzle is a parsed crosswordle definition. Colorings and Hints are
// ordered bottom row first, the order solving proceeds in.
type Puzzle struct {
	Colorings []primitives.Coloring
	Hints     []Hint
}

// Parse parses a v2 puzzle string or a share URL containing one. wordLen is
// the puzzle's column count (crosswordle rows are 5 letters wide).
func Parse(s string, wordLen int) (*Puzzle, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") || strings.Contains(s, "puzzle=") {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parsing puzzle URL: %w", err)
		}
		s = u.Query().Get("puzzle")
		if s == "" {
			return nil, fmt.Errorf("URL has no puzzle parameter")
		}
	}

	parts := strings.SplitN(s, "-", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("puzzle %q does not have version-colorings-hints sections", s)
	}
	if parts[0] != "v2" {
		return nil, fmt.Errorf("unsupported puzzle version %q", parts[0])
	}

	numStrs := strings.Split(parts[1], ",")
	hintStrs := strings.Split(parts[2], ",")
	if len(numStrs) != len(hintStrs) {
		return nil, fmt.Errorf("puzzle has %d colorings but %d hints", len(numStrs), len(hintStrs))
	}
	if len(numStrs) == 0 {
		return nil, fmt.Errorf("puzzle has no rows")
	}

	p := &Puzzle{
		Colorings: make([]primitives.Coloring, len(numStrs)),
		Hints:     make([]Hint, len(hintStrs)),
	}

	// The URL lists rows top first; reverse into bottom-first order.
	rows := len(numStrs)
	for i, numStr := range numStrs {
		num, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d coloring %q: %w", i, numStr, err)
		}
		c, err := primitives.ColoringFromNum(num, wordLen)
		if err != nil {
			return nil, fmt.Errorf("row %d coloring %q: %w", i, numStr, err)
		}
		p.Colorings[rows-1-i] = c
	}
	for i, hintStr := range hintStrs {
		h, err := parseHint(hintStr, wordLen)
		if err != nil {
			return nil, fmt.Errorf("row %d hint %q: %w", i, hintStr, err)
		}
		p.Hints[rows-1-i] = h
	}

	return p, nil
}

func parseHint(s string, wordLen int) (Hint, error) {
	if s == "x" {
		return nil, nil
	}

	var hint Hint
	for i := 0; i < len(s); {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if start == i || i == len(s) {
			return nil, fmt.Errorf("malformed hint pair at offset %d", start)
		}
		index, err := strconv.Atoi(s[start:i])
		if err != nil {
			return nil, err
		}
		letter := s[i]
		i++
		if index >= wordLen {
			return nil, fmt.Errorf("hint index %d out of range for %d columns", index, wordLen)
		}
		if letter < 'a' || letter > 'z' {
			return nil, fmt.Errorf("hint letter %q is not a lowercase letter", letter)
		}
		hint = append(hint, LetterAt{Index: index, Letter: letter})
	}
	return hint, nil
}

// Matches reports whether w satisfies every pinned letter of the hint.
func (h Hint) Matches(w primitives.Word) bool {
	for _, la := range h {
		if la.Index >= len(w) || w[la.Index] != la.Letter {
			return false
		}
	}
	return true
}

// FilterOptions returns the words satisfying the bottom row's hint.
func (p *Puzzle) FilterOptions(words []primitives.Word) []primitives.Word {
	if len(p.Hints) == 0 || len(p.Hints[0]) == 0 {
		return words
	}
	var filtered []primitives.Word
	for _, w := range words {
		if p.Hints[0].Matches(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
