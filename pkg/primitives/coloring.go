package primitives

import (
	"fmt"
	"strings"
)

// Tile is one ternary feedback state in a row's coloring.
type Tile uint8

const (
	// TileGrey marks a letter absent from the row's solution.
	TileGrey Tile = iota
	// TileYellow marks a letter present elsewhere in the row's solution.
	TileYellow
	// TileGreen marks a letter in its exact position.
	TileGreen
)

// MaxColoringLength is the longest row a Coloring can represent.
const MaxColoringLength = 16

// Coloring is a fixed-length row of ternary tiles, packed two bits per
// tile. It is immutable and comparable, so it can key maps directly.
//
// Crosswordle puzzle URLs carry colorings as decimal ternary numbers with
// the leftmost tile most significant (e.g. 242 is the all-green "22222"),
// which Num and ColoringFromNum round-trip.
type Coloring struct {
	length uint8
	tiles  uint32
}

// ColoringOf builds a Coloring from tiles in left-to-right order.
func ColoringOf(tiles ...Tile) (Coloring, error) {
	if len(tiles) == 0 || len(tiles) > MaxColoringLength {
		return Coloring{}, fmt.Errorf("coloring length %d out of range [1, %d]", len(tiles), MaxColoringLength)
	}
	var c Coloring
	c.length = uint8(len(tiles))
	for i, t := range tiles {
		if t > TileGreen {
			return Coloring{}, fmt.Errorf("tile %d is not a ternary state: %d", i, t)
		}
		c.tiles |= uint32(t) << (2 * uint(i))
	}
	return c, nil
}

// ColoringFromNum decodes the decimal ternary representation of a coloring
// at a given length, leftmost tile most significant.
func ColoringFromNum(num int64, length int) (Coloring, error) {
	if length <= 0 || length > MaxColoringLength {
		return Coloring{}, fmt.Errorf("coloring length %d out of range [1, %d]", length, MaxColoringLength)
	}
	if num < 0 {
		return Coloring{}, fmt.Errorf("coloring number %d is negative", num)
	}
	tiles := make([]Tile, length)
	for i := length - 1; i >= 0; i-- {
		tiles[i] = Tile(num % 3)
		num /= 3
	}
	if num != 0 {
		return Coloring{}, fmt.Errorf("coloring number does not fit in %d tiles", length)
	}
	return ColoringOf(tiles...)
}

// ParseColoring parses a string of ternary digits, e.g. "22120".
func ParseColoring(s string) (Coloring, error) {
	if len(s) == 0 || len(s) > MaxColoringLength {
		return Coloring{}, fmt.Errorf("coloring %q has length out of range [1, %d]", s, MaxColoringLength)
	}
	tiles := make([]Tile, len(s))
	for i, r := range s {
		if r < '0' || r > '2' {
			return Coloring{}, fmt.Errorf("coloring %q has non-ternary digit %q", s, r)
		}
		tiles[i] = Tile(r - '0')
	}
	return ColoringOf(tiles...)
}

// Length returns the number of tiles.
func (c Coloring) Length() int {
	return int(c.length)
}

// Tile returns the tile at the given index, leftmost first.
func (c Coloring) Tile(index int) Tile {
	return Tile(c.tiles >> (2 * uint(index)) & 0b11)
}

// Num returns the decimal ternary representation, leftmost tile most
// significant.
func (c Coloring) Num() int64 {
	var num int64
	for i := range c.Length() {
		num = num*3 + int64(c.Tile(i))
	}
	return num
}

// AllGreen reports whether every tile is green.
func (c Coloring) AllGreen() bool {
	for i := range c.Length() {
		if c.Tile(i) != TileGreen {
			return false
		}
	}
	return true
}

func (c Coloring) String() string {
	var sb strings.Builder
	for i := range c.Length() {
		sb.WriteByte(byte('0') + byte(c.Tile(i)))
	}
	return sb.String()
}
