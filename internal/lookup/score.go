package lookup

import (
	"crosswarped.com/cwsolve/pkg/primitives"
)

// Score returns the Wordle coloring of guess against solution. Greens are
// assigned first; yellows then consume the multiset of unmatched solution
// letters left to right, so repeated guess letters only go yellow while
// unmatched copies remain.
//
// guess and solution must have the same length.
func Score(guess, solution primitives.Word) primitives.Coloring {
	n := len(solution)
	if len(guess) != n {
		panic("lookup: guess and solution lengths differ")
	}

	tiles := make([]primitives.Tile, n)
	var unmatched [26]int
	for i := range n {
		if guess[i] == solution[i] {
			tiles[i] = primitives.TileGreen
		} else {
			unmatched[solution[i]-'a']++
		}
	}

	for i := range n {
		if tiles[i] == primitives.TileGreen {
			continue
		}
		idx := guess[i] - 'a'
		if unmatched[idx] > 0 {
			unmatched[idx]--
			tiles[i] = primitives.TileYellow
		}
	}

	c, err := primitives.ColoringOf(tiles...)
	if err != nil {
		panic("lookup: " + err.Error())
	}
	return c
}
