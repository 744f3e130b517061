package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"crosswarped.com/cwsolve"
	"crosswarped.com/cwsolve/internal/lookup"
	"crosswarped.com/cwsolve/internal/puzzle"
	"crosswarped.com/cwsolve/pkg/primitives"
)

func main() {

	puzzleStr := flag.String("puzzle", "", "The crosswordle puzzle string or share URL (v2 format)")
	width := flag.Int("width", 5, "The number of columns in the puzzle")
	file := flag.String("file", "", "The file to load the lexicon from")
	tableFile := flag.String("table", "", "Path to a cached lookup table; built from the lexicon and saved here if missing")
	pairwise := flag.Bool("pairwise", false, "Score each row against the row directly below instead of the bottom word")
	parallel := flag.Int("parallel", 1, "Number of bottom-row words searched concurrently")

	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the solver")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	if *puzzleStr == "" {
		fmt.Println("A -puzzle string is required")
		os.Exit(1)
	}
	if *file == "" && *tableFile == "" {
		fmt.Println("Either -file or -table is required")
		os.Exit(1)
	}

	ctx := context.Background()

	p, err := puzzle.Parse(*puzzleStr, *width)
	if err != nil {
		fmt.Println("Error parsing puzzle:", err)
		os.Exit(1)
	}

	var words []primitives.Word
	if *file != "" {
		fmt.Println("Loading lexicon from file...")
		if words, err = loadFromFile(ctx, *file, *width); err != nil {
			fmt.Println("Error loading lexicon from file:", err)
			os.Exit(1)
		}
		fmt.Println("Lexicon words:", len(words))
	}

	table, err := loadOrBuildTable(ctx, *tableFile, words)
	if err != nil {
		fmt.Println("Error preparing lookup table:", err)
		os.Exit(1)
	}
	if table.WordLen() != *width {
		fmt.Printf("Table words have length %d, puzzle has %d columns\n", table.WordLen(), *width)
		os.Exit(1)
	}

	if len(words) == 0 {
		// Table-only run: the options are the whole cached lexicon.
		words = table.Lexicon()
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	options := p.FilterOptions(words)
	fmt.Println("Bottom-row options after hints:", len(options))

	var lk cwsolve.Lookup = table
	if *pairwise {
		lk = pairwiseOnly{table}
	}

	solver := cwsolve.CreateSolver(options, p.Colorings, lk, cwsolve.SolverParams{
		Parallelism: *parallel,
	})

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	start := time.Now()
	solutions, err := solver.Solve(ctx)
	if err != nil {
		fmt.Println("Error solving:", err)
		os.Exit(1)
	}

	fmt.Println("--------------------------------")
	if len(solutions) == 0 {
		fmt.Println("No solutions found")
	}
	for _, w := range solutions {
		fmt.Println(w)
	}
	fmt.Println("--------------------------------")
	fmt.Printf("%d solutions in %v\n", len(solutions), time.Since(start))
}

// pairwiseOnly hides the table's ChainCandidates so the solver falls back
// to scoring each row against the row directly below it.
type pairwiseOnly struct {
	table *lookup.Table
}

func (p pairwiseOnly) Candidates(coloring primitives.Coloring, below primitives.Word) ([]primitives.Word, error) {
	return p.table.Candidates(coloring, below)
}

func (p pairwiseOnly) BottomCandidates(coloring primitives.Coloring, options []primitives.Word) ([]primitives.Word, error) {
	return p.table.BottomCandidates(coloring, options)
}

func loadOrBuildTable(ctx context.Context, path string, words []primitives.Word) (*lookup.Table, error) {
	if path != "" {
		if f, err := os.Open(path); err == nil {
			defer f.Close()
			fmt.Println("Loading lookup table from", path)
			return lookup.Load(bufio.NewReader(f))
		}
	}

	if len(words) == 0 {
		return nil, fmt.Errorf("no lexicon to build a table from")
	}

	fmt.Println("Building lookup table...")
	table, err := lookup.Build(ctx, words)
	if err != nil {
		return nil, err
	}

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating table cache: %w", err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		if err := table.Save(w); err != nil {
			return nil, fmt.Errorf("saving table cache: %w", err)
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
		fmt.Println("Saved lookup table to", path)
	}

	return table, nil
}

func loadFromFile(ctx context.Context, path string, width int) ([]primitives.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []primitives.Word
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if strings.HasPrefix(word, "#") || word == "" {
			continue
		}
		if len(word) != width {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := primitives.CheckWord(primitives.Word(word), width); err != nil {
			return nil, err
		}
		words = append(words, primitives.Word(word))
	}
	return words, scanner.Err()
}
