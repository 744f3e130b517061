package lookup

import (
	"crosswarped.com/cwsolve/pkg/primitives"
)

// Crosswordle's hard-mode rules for whether a word may be played on the row
// above an existing chain:
//
//  1. a letter already played on a grey tile in any previous row cannot sit
//     on a grey tile again;
//  2. a letter on a grey or yellow tile cannot sit in a column where the
//     same letter was placed in any previous row;
//  3. the multiset of yellow+green letters must be contained in the
//     previous row's yellow+green letters.

// greyLetters collects every letter played on a grey tile anywhere in the
// chain. This includes letters that are green or yellow elsewhere in their
// row; playing such a letter grey forfeits reusing it grey later.
func greyLetters(chain []primitives.Word, colorings []primitives.Coloring) primitives.LetterSet {
	var greys primitives.LetterSet
	for i, w := range chain {
		c := colorings[i]
		for j := range len(w) {
			if c.Tile(j) == primitives.TileGrey {
				greys.Add(rune(w[j]))
			}
		}
	}
	return greys
}

// alignedAt reports whether letter already occupies column index in any
// chain row.
func alignedAt(letter byte, index int, chain []primitives.Word) bool {
	for _, w := range chain {
		if w[index] == letter {
			return true
		}
	}
	return false
}

// nonGreyCounts returns the letter multiset of w's yellow and green tiles.
func nonGreyCounts(w primitives.Word, c primitives.Coloring) [26]int {
	var counts [26]int
	for i := range len(w) {
		if c.Tile(i) != primitives.TileGrey {
			counts[w[i]-'a']++
		}
	}
	return counts
}

func isSubBag(sub, full [26]int) bool {
	for i := range sub {
		if sub[i] > full[i] {
			return false
		}
	}
	return true
}

// playable applies rules 1-3 to a candidate word w with coloring c for the
// row above chain.
func playable(w primitives.Word, c primitives.Coloring, greys primitives.LetterSet, chain []primitives.Word, prev primitives.Word, prevColoring primitives.Coloring) bool {
	var nonGreys [26]int
	for i := range len(w) {
		letter := w[i]
		switch c.Tile(i) {
		case primitives.TileGrey:
			if greys.Contains(rune(letter)) {
				return false
			}
			if alignedAt(letter, i, chain) {
				return false
			}
		case primitives.TileYellow:
			if alignedAt(letter, i, chain) {
				return false
			}
			nonGreys[letter-'a']++
		default:
			nonGreys[letter-'a']++
		}
	}

	return isSubBag(nonGreys, nonGreyCounts(prev, prevColoring))
}
