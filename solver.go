package cwsolve

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"crosswarped.com/cwsolve/pkg/primitives"
)

// ErrInvalidInput reports a structurally invalid solve request: empty
// options, empty colorings, or a length mismatch between the colorings and
// the candidate words. A puzzle with no solutions is not an error.
var ErrInvalidInput = errors.New("invalid solver input")

// Lookup supplies the candidate words compatible with a row's coloring.
//
// The bottom row has no word below it, so it is queried through a separate
// method instead of a nil placeholder.
type Lookup interface {
	// Candidates returns the words whose paired scoring against the word
	// directly below reproduces the given coloring.
	Candidates(coloring primitives.Coloring, below primitives.Word) ([]primitives.Word, error)

	// BottomCandidates returns the subset of options consistent with the
	// bottom row's coloring considered in isolation.
	BottomCandidates(coloring primitives.Coloring, options []primitives.Word) ([]primitives.Word, error)
}

// ChainLookup is an optional upgrade of Lookup for providers whose row
// constraints depend on the whole committed chain rather than only the word
// directly below (Crosswordle's grey-reuse and alignment rules are of this
// kind). When a Lookup also implements ChainLookup, the solver queries it
// with the full chain.
//
// ChainCandidates must return a subset of the words that are pairwise
// compatible with the row below; it may only narrow, never widen.
type ChainLookup interface {
	// ChainCandidates returns the candidates for the next row above chain.
	// chain is ordered bottom row first and colorings[i] is the coloring
	// of chain[i].
	ChainCandidates(coloring primitives.Coloring, chain []primitives.Word, colorings []primitives.Coloring) ([]primitives.Word, error)
}

// SolverParams holds optional solver tuning.
type SolverParams struct {
	// Parallelism is the number of bottom-row words searched concurrently.
	// Values below 2 keep the search sequential. Each concurrent search
	// owns its chain; only the result set is shared.
	Parallelism int
}

// Solver enumerates the bottom-row words of a coloring puzzle that admit a
// complete chain of compatible rows.
type Solver struct {
	Options   []primitives.Word
	Colorings []primitives.Coloring
	Lookup    Lookup

	params SolverParams
}

// CreateSolver builds a Solver. Colorings are ordered bottom row first.
func CreateSolver(options []primitives.Word, colorings []primitives.Coloring, lookup Lookup, params SolverParams) *Solver {
	return &Solver{
		Options:   options,
		Colorings: colorings,
		Lookup:    lookup,
		params:    params,
	}
}

// Solve runs a sequential search over options. See Solver.Solve.
func Solve(ctx context.Context, options []primitives.Word, colorings []primitives.Coloring, lookup Lookup) ([]primitives.Word, error) {
	return CreateSolver(options, colorings, lookup, SolverParams{}).Solve(ctx)
}

// Solve returns every option for which at least one complete chain of rows
// reproduces all colorings. An empty result with a nil error means the
// search ran to completion and found nothing.
//
// Worst-case time is exponential in the row count (the product of the
// lookup's branching factors per row); large or weakly constrained option
// lists degrade runtime accordingly.
func (s *Solver) Solve(ctx context.Context) ([]primitives.Word, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	frontier, err := s.Lookup.BottomCandidates(s.Colorings[0], s.Options)
	if err != nil {
		return nil, err
	}

	// Dedup while preserving order; each bottom word is searched once.
	seen := make(map[primitives.Word]bool, len(frontier))
	words := frontier[:0:0]
	for _, w := range frontier {
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}

	if s.params.Parallelism > 1 {
		return s.solveParallel(ctx, words)
	}

	var solutions []primitives.Word
	chain := make([]primitives.Word, 0, len(s.Colorings))
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chain = append(chain[:0], w)
		ok, err := s.extend(chain)
		if err != nil {
			return nil, err
		}
		if ok {
			solutions = append(solutions, w)
		}
	}
	return solutions, nil
}

func (s *Solver) check() error {
	if len(s.Options) == 0 {
		return fmt.Errorf("%w: no options", ErrInvalidInput)
	}
	if len(s.Colorings) == 0 {
		return fmt.Errorf("%w: no colorings", ErrInvalidInput)
	}
	if s.Lookup == nil {
		return fmt.Errorf("%w: nil lookup", ErrInvalidInput)
	}
	columns := s.Colorings[0].Length()
	for i, c := range s.Colorings {
		if c.Length() != columns {
			return fmt.Errorf("%w: coloring %d has length %d, want %d", ErrInvalidInput, i, c.Length(), columns)
		}
	}
	for _, w := range s.Options {
		if len(w) != columns {
			return fmt.Errorf("%w: option %q has length %d, want %d", ErrInvalidInput, w, len(w), columns)
		}
	}
	return nil
}

// extend tries to grow chain upward to the full row count, returning true
// as soon as one complete chain exists. The chain is restored to its input
// state before each sibling attempt and before returning.
func (s *Solver) extend(chain []primitives.Word) (bool, error) {
	row := len(chain)
	if row == len(s.Colorings) {
		return true, nil
	}

	candidates, err := s.candidates(s.Colorings[row], chain)
	if err != nil {
		return false, err
	}

	for _, c := range candidates {
		ok, err := s.extend(append(chain, c))
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (s *Solver) candidates(coloring primitives.Coloring, chain []primitives.Word) ([]primitives.Word, error) {
	if cl, ok := s.Lookup.(ChainLookup); ok {
		return cl.ChainCandidates(coloring, chain, s.Colorings[:len(chain)])
	}
	return s.Lookup.Candidates(coloring, chain[len(chain)-1])
}

// solveParallel fans the per-word searches out over a bounded worker pool.
// Results are reported per index so the output order matches the
// sequential search regardless of scheduling.
func (s *Solver) solveParallel(ctx context.Context, words []primitives.Word) ([]primitives.Word, error) {
	if len(words) == 0 {
		return nil, nil
	}

	workers := s.params.Parallelism
	if workers > runtime.GOMAXPROCS(0) {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(words) {
		workers = len(words)
	}

	solved := make([]bool, len(words))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range words {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chain := make([]primitives.Word, 1, len(s.Colorings))
			chain[0] = w
			ok, err := s.extend(chain)
			if err != nil {
				return err
			}
			if ok {
				mu.Lock()
				solved[i] = true
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var solutions []primitives.Word
	for i, ok := range solved {
		if ok {
			solutions = append(solutions, words[i])
		}
	}
	return solutions, nil
}
