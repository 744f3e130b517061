package cwsolve_test

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"testing"

	"crosswarped.com/cwsolve"
	"crosswarped.com/cwsolve/internal/lookup"
	"crosswarped.com/cwsolve/pkg/primitives"
)

func loadWords(t testing.TB) []primitives.Word {
	file, err := os.Open("testdata/words.txt")
	if err != nil {
		t.Fatalf("failed to open words file: %v", err)
	}
	defer file.Close()

	var words []primitives.Word
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, primitives.Word(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan words file: %v", err)
	}
	return words
}

func TestSolve_EndToEnd(t *testing.T) {
	words := loadWords(t)

	table, err := lookup.Build(t.Context(), words)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	// A three-row puzzle around the bottom word "stale": the rows above it
	// score "steal" then "slate" against it.
	colorings := []primitives.Coloring{
		mustAllGreen(t, 5),
		lookup.Score("steal", "stale"),
		lookup.Score("slate", "stale"),
	}

	solutions, err := cwsolve.Solve(t.Context(), words, colorings, table)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	fmt.Println("Solutions:")
	for _, w := range solutions {
		fmt.Println(w)
	}

	if !slices.Equal(solutions, []primitives.Word{"stale"}) {
		t.Errorf("solutions = %v, want [stale]", solutions)
	}

	// Every solution must be solvable on its own (a confirmed bottom word
	// implies a reconstructable chain).
	for _, w := range solutions {
		replay, err := cwsolve.Solve(t.Context(), []primitives.Word{w}, colorings, table)
		if err != nil {
			t.Fatalf("replay Solve(%q): %v", w, err)
		}
		if !slices.Equal(replay, []primitives.Word{w}) {
			t.Errorf("replay of %q = %v, want [%s]", w, replay, w)
		}
	}
}

func TestSolve_EndToEnd_ParallelAgrees(t *testing.T) {
	words := loadWords(t)

	table, err := lookup.Build(t.Context(), words)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}

	colorings := []primitives.Coloring{
		mustAllGreen(t, 5),
		lookup.Score("steal", "stale"),
		lookup.Score("slate", "stale"),
	}

	sequential, err := cwsolve.Solve(t.Context(), words, colorings, table)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	parallel, err := cwsolve.CreateSolver(words, colorings, table, cwsolve.SolverParams{
		Parallelism: 4,
	}).Solve(t.Context())
	if err != nil {
		t.Fatalf("parallel Solve: %v", err)
	}

	if !slices.Equal(sequential, parallel) {
		t.Errorf("parallel = %v, sequential = %v", parallel, sequential)
	}
}

func mustAllGreen(t testing.TB, length int) primitives.Coloring {
	t.Helper()
	tiles := make([]primitives.Tile, length)
	for i := range tiles {
		tiles[i] = primitives.TileGreen
	}
	c, err := primitives.ColoringOf(tiles...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func BenchmarkSolve(b *testing.B) {
	words := loadWords(b)
	b.ReportAllocs()

	table, err := lookup.Build(b.Context(), words)
	if err != nil {
		b.Fatalf("failed to build table: %v", err)
	}

	colorings := []primitives.Coloring{
		mustAllGreen(b, 5),
		lookup.Score("steal", "stale"),
		lookup.Score("slate", "stale"),
	}

	for b.Loop() {
		solutions, err := cwsolve.Solve(b.Context(), words, colorings, table)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportMetric(float64(len(solutions)), "solutions")
	}
}
