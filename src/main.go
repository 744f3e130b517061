package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"google.golang.org/api/iterator"

	"crosswarped.com/cwsolve"
	"crosswarped.com/cwsolve/internal/lookup"
	"crosswarped.com/cwsolve/internal/puzzle"
	"crosswarped.com/cwsolve/pkg/primitives"
)

type SolvePuzzleRequest struct {
	Puzzle       string   `json:"puzzle"`
	Width        int      `json:"width"`
	Lexicon      []string `json:"lexicon"`
	WordScope    string   `json:"wordScope"`
	Pairwise     bool     `json:"pairwise"`
	Parallelism  int      `json:"parallelism"`
	MaxSolutions int      `json:"maxSolutions"`
}

type SolvePuzzleResponse struct {
	Success   bool     `json:"success"`
	Solutions []string `json:"solutions"`
	Error     string   `json:"error,omitempty"`
}

func getWords(ctx context.Context, scope string, width int) ([]string, error) {
	client, err := bigquery.NewClient(ctx, "xword-x")
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT word_key FROM `xword-x.FirestoreQuery.all_words` WHERE scope = %q AND LENGTH(word_key) = %d", scope, width)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var words []string
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}

		word, ok := row[0].(string)
		if !ok {
			return nil, fmt.Errorf("row[0] is not a string: %v", row[0])
		}
		words = append(words, word)
	}
	return words, nil
}

// The table build is quadratic in the lexicon size, so tables are reused
// across invocations of the same function instance, keyed by word scope.
// Inline lexicons are never cached.
var (
	tableCacheMu sync.Mutex
	tableCache   = map[string]*lookup.Table{}
)

func getTable(ctx context.Context, scope string, words []primitives.Word) (*lookup.Table, error) {
	if scope != "" {
		tableCacheMu.Lock()
		cached := tableCache[scope]
		tableCacheMu.Unlock()
		if cached != nil {
			return cached, nil
		}
	}

	table, err := lookup.Build(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("lookup.Build: %w", err)
	}

	if scope != "" {
		tableCacheMu.Lock()
		tableCache[scope] = table
		tableCacheMu.Unlock()
	}
	return table, nil
}

func execute(ctx context.Context, req SolvePuzzleRequest) ([]string, error) {
	if req.Width == 0 {
		req.Width = 5
	}
	if req.Width < 2 || req.Width > primitives.MaxColoringLength {
		return nil, fmt.Errorf("width must be between 2 and %d", primitives.MaxColoringLength)
	}
	if req.Puzzle == "" {
		return nil, fmt.Errorf("puzzle must not be empty")
	}
	if req.MaxSolutions <= 0 {
		req.MaxSolutions = 100
	}

	p, err := puzzle.Parse(req.Puzzle, req.Width)
	if err != nil {
		return nil, fmt.Errorf("puzzle.Parse: %w", err)
	}

	var words []primitives.Word
	for _, w := range req.Lexicon {
		words = append(words, primitives.Word(strings.ToLower(w)))
	}
	if req.WordScope != "" {
		scoped, err := getWords(ctx, req.WordScope, req.Width)
		if err != nil {
			return nil, fmt.Errorf("getWords: %w", err)
		}
		fmt.Printf("Loaded %d words for scope %q\n", len(scoped), req.WordScope)
		for _, w := range scoped {
			words = append(words, primitives.Word(w))
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no lexicon: provide lexicon words or a wordScope")
	}

	cacheScope := req.WordScope
	if len(req.Lexicon) > 0 {
		cacheScope = ""
	}
	table, err := getTable(ctx, cacheScope, words)
	if err != nil {
		return nil, err
	}

	var lk cwsolve.Lookup = table
	if req.Pairwise {
		lk = pairwiseOnly{table}
	}

	options := p.FilterOptions(words)
	if len(options) == 0 {
		return nil, fmt.Errorf("no words satisfy the bottom-row hints")
	}

	deadline, ok := ctx.Deadline()
	timeout := 1 * time.Minute
	if ok {
		timeout = time.Until(deadline) - 5*time.Second
		fmt.Printf("Setting timeout to %v\n", timeout)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	solver := cwsolve.CreateSolver(options, p.Colorings, lk, cwsolve.SolverParams{
		Parallelism: req.Parallelism,
	})
	solutions, err := solver.Solve(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]string, 0, len(solutions))
	for _, w := range solutions {
		results = append(results, string(w))
		if len(results) >= req.MaxSolutions {
			break
		}
	}
	return results, nil
}

type pairwiseOnly struct {
	table *lookup.Table
}

func (p pairwiseOnly) Candidates(coloring primitives.Coloring, below primitives.Word) ([]primitives.Word, error) {
	return p.table.Candidates(coloring, below)
}

func (p pairwiseOnly) BottomCandidates(coloring primitives.Coloring, options []primitives.Word) ([]primitives.Word, error) {
	return p.table.BottomCandidates(coloring, options)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func solvePuzzle(w http.ResponseWriter, r *http.Request) {
	// Set CORS headers
	setCORSHeaders(w)

	// Handle OPTIONS request for CORS preflight
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "Method %s not allowed"}`, r.Method)
		return
	}

	var req SolvePuzzleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fmt.Printf("Error parsing JSON body: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		response := SolvePuzzleResponse{
			Success: false,
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		}
		json.NewEncoder(w).Encode(response)
		return
	}

	solutions, err := execute(r.Context(), req)

	response := SolvePuzzleResponse{
		Success:   err == nil,
		Solutions: solutions,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Printf("Error marshaling response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"success": false, "error": "Internal server error"}`)
		return
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/solve-puzzle", solvePuzzle)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
