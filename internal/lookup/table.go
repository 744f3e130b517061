// Package lookup builds and queries the coloring table backing the chain
// solver: for every (solution, coloring) pair over a lexicon it records the
// guesses whose scoring against the solution reproduces that coloring,
// giving the solver O(1) access to each row's candidate set.
package lookup

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"
	"slices"

	"crosswarped.com/cwsolve/pkg/primitives"
)

type tableKey struct {
	solution primitives.Word
	coloring primitives.Coloring
}

// Table maps (solution, coloring) pairs to compatible guess words. It
// implements cwsolve.Lookup and cwsolve.ChainLookup.
type Table struct {
	wordLen int

	lexicon map[primitives.Word]bool
	entries map[tableKey][]primitives.Word

	// byColoring indexes, per coloring, every word playable with that
	// coloring under some solution. Used for bottom-row queries where no
	// solution word is known yet.
	byColoring map[primitives.Coloring]map[primitives.Word]bool
}

// Build precomputes the table over all ordered pairs of distinct lexicon
// words. The build is quadratic in the lexicon size; the context is checked
// once per solution word so a caller can abort long builds.
func Build(ctx context.Context, lexicon []primitives.Word) (*Table, error) {
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("empty lexicon")
	}
	wordLen := len(lexicon[0])
	if wordLen > primitives.MaxColoringLength {
		return nil, fmt.Errorf("word length %d exceeds %d", wordLen, primitives.MaxColoringLength)
	}
	for _, w := range lexicon {
		if err := primitives.CheckWord(w, wordLen); err != nil {
			return nil, err
		}
	}

	t := &Table{
		wordLen:    wordLen,
		lexicon:    make(map[primitives.Word]bool, len(lexicon)),
		entries:    make(map[tableKey][]primitives.Word),
		byColoring: make(map[primitives.Coloring]map[primitives.Word]bool),
	}
	for _, w := range lexicon {
		t.lexicon[w] = true
	}

	for _, solution := range lexicon {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, guess := range lexicon {
			if guess == solution {
				continue
			}
			t.add(solution, guess, Score(guess, solution))
		}
	}
	return t, nil
}

func (t *Table) add(solution, guess primitives.Word, coloring primitives.Coloring) {
	key := tableKey{solution: solution, coloring: coloring}
	t.entries[key] = append(t.entries[key], guess)

	set := t.byColoring[coloring]
	if set == nil {
		set = make(map[primitives.Word]bool)
		t.byColoring[coloring] = set
	}
	set[guess] = true
}

// WordLen returns the column count of the table's lexicon.
func (t *Table) WordLen() int {
	return t.wordLen
}

// Contains reports whether w is in the table's lexicon.
func (t *Table) Contains(w primitives.Word) bool {
	return t.lexicon[w]
}

// Lexicon returns the table's words in sorted order.
func (t *Table) Lexicon() []primitives.Word {
	words := make([]primitives.Word, 0, len(t.lexicon))
	for w := range t.lexicon {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

func (t *Table) checkColoring(coloring primitives.Coloring) error {
	if coloring.Length() != t.wordLen {
		return fmt.Errorf("coloring %v has length %d, table words have length %d", coloring, coloring.Length(), t.wordLen)
	}
	return nil
}

// Candidates returns the words whose scoring against below reproduces
// coloring. The returned slice is shared; callers must not modify it.
func (t *Table) Candidates(coloring primitives.Coloring, below primitives.Word) ([]primitives.Word, error) {
	if err := t.checkColoring(coloring); err != nil {
		return nil, err
	}
	return t.entries[tableKey{solution: below, coloring: coloring}], nil
}

// BottomCandidates returns the subset of options consistent with the
// bottom row's coloring in isolation. An all-green coloring admits any
// lexicon word (the table itself never pairs a word with itself, so the
// all-green coloring has no entries); any other coloring admits the words
// playable with it under some solution.
func (t *Table) BottomCandidates(coloring primitives.Coloring, options []primitives.Word) ([]primitives.Word, error) {
	if err := t.checkColoring(coloring); err != nil {
		return nil, err
	}

	var admissible []primitives.Word
	if coloring.AllGreen() {
		for _, w := range options {
			if t.lexicon[w] {
				admissible = append(admissible, w)
			}
		}
		return admissible, nil
	}

	set := t.byColoring[coloring]
	for _, w := range options {
		if set[w] {
			admissible = append(admissible, w)
		}
	}
	return admissible, nil
}

// ChainCandidates returns the candidates for the row above chain under
// Crosswordle's rules: every row is scored against the chain's bottom word,
// and the hard-mode filters in rules.go prune words that could not be
// played given the rows already committed.
func (t *Table) ChainCandidates(coloring primitives.Coloring, chain []primitives.Word, colorings []primitives.Coloring) ([]primitives.Word, error) {
	if err := t.checkColoring(coloring); err != nil {
		return nil, err
	}
	if len(chain) == 0 || len(chain) != len(colorings) {
		return nil, fmt.Errorf("chain has %d words but %d colorings", len(chain), len(colorings))
	}

	base := t.entries[tableKey{solution: chain[0], coloring: coloring}]
	if len(base) == 0 {
		return nil, nil
	}

	greys := greyLetters(chain, colorings)
	prev := chain[len(chain)-1]
	prevColoring := colorings[len(colorings)-1]

	var filtered []primitives.Word
	for _, w := range base {
		if playable(w, coloring, greys, chain, prev, prevColoring) {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

// tableFile is the persisted form of a Table. The struct-keyed maps are
// flattened into record slices so the encoding stays stable across
// versions of the in-memory layout.
type tableFile struct {
	WordLen int
	Lexicon []string
	Entries []tableEntry
}

type tableEntry struct {
	Solution string
	Coloring int64
	Words    []string
}

// Save writes the table as a gob stream.
func (t *Table) Save(w io.Writer) error {
	file := tableFile{
		WordLen: t.wordLen,
		Lexicon: make([]string, 0, len(t.lexicon)),
		Entries: make([]tableEntry, 0, len(t.entries)),
	}
	for word := range t.lexicon {
		file.Lexicon = append(file.Lexicon, string(word))
	}
	for key, words := range t.entries {
		entry := tableEntry{
			Solution: string(key.solution),
			Coloring: key.coloring.Num(),
			Words:    make([]string, len(words)),
		}
		for i, w := range words {
			entry.Words[i] = string(w)
		}
		file.Entries = append(file.Entries, entry)
	}
	return gob.NewEncoder(w).Encode(file)
}

// Load reads a table previously written by Save.
func Load(r io.Reader) (*Table, error) {
	var file tableFile
	if err := gob.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding table: %w", err)
	}
	if file.WordLen <= 0 || file.WordLen > primitives.MaxColoringLength {
		return nil, fmt.Errorf("table has invalid word length %d", file.WordLen)
	}

	t := &Table{
		wordLen:    file.WordLen,
		lexicon:    make(map[primitives.Word]bool, len(file.Lexicon)),
		entries:    make(map[tableKey][]primitives.Word, len(file.Entries)),
		byColoring: make(map[primitives.Coloring]map[primitives.Word]bool),
	}
	for _, w := range file.Lexicon {
		t.lexicon[primitives.Word(w)] = true
	}
	for _, entry := range file.Entries {
		coloring, err := primitives.ColoringFromNum(entry.Coloring, file.WordLen)
		if err != nil {
			return nil, fmt.Errorf("decoding table entry for %q: %w", entry.Solution, err)
		}
		for _, w := range entry.Words {
			t.add(primitives.Word(entry.Solution), primitives.Word(w), coloring)
		}
	}
	return t, nil
}
