package puzzle

import (
	"testing"

	"crosswarped.com/cwsolve/pkg/primitives"
)

func TestParse(t *testing.T) {
	p, err := Parse("v2-0,9,99,20,20,242-x,x,x,x,x,2x", 5)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Rows come in top first and are reversed into bottom-first order.
	wantNums := []int64{242, 20, 20, 99, 9, 0}
	if len(p.Colorings) != len(wantNums) {
		t.Fatalf("got %d colorings, want %d", len(p.Colorings), len(wantNums))
	}
	for i, want := range wantNums {
		if got := p.Colorings[i].Num(); got != want {
			t.Errorf("coloring[%d] = %d, want %d", i, got, want)
		}
	}

	if !p.Colorings[0].AllGreen() {
		t.Error("bottom coloring should be all green")
	}

	if len(p.Hints) != 6 {
		t.Fatalf("got %d hints, want 6", len(p.Hints))
	}
	for i := 1; i < 6; i++ {
		if len(p.Hints[i]) != 0 {
			t.Errorf("hint[%d] = %v, want empty", i, p.Hints[i])
		}
	}
	want := Hint{{Index: 2, Letter: 'x'}}
	if len(p.Hints[0]) != 1 || p.Hints[0][0] != want[0] {
		t.Errorf("bottom hint = %v, want %v", p.Hints[0], want)
	}
}

func TestParse_ShareURL(t *testing.T) {
	p, err := Parse("https://crosswordle.vercel.app/?puzzle=v2-0,242-x,1a4e", 5)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(p.Colorings) != 2 {
		t.Fatalf("got %d colorings, want 2", len(p.Colorings))
	}
	if p.Colorings[0].Num() != 242 || p.Colorings[1].Num() != 0 {
		t.Errorf("colorings = [%d, %d], want [242, 0]", p.Colorings[0].Num(), p.Colorings[1].Num())
	}

	want := Hint{{Index: 1, Letter: 'a'}, {Index: 4, Letter: 'e'}}
	got := p.Hints[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("bottom hint = %v, want %v", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		s    string
	}{
		{"missing sections", "v2-0,9,99"},
		{"bad version", "v1-0,242-x,x"},
		{"hint count mismatch", "v2-0,242-x"},
		{"non-numeric coloring", "v2-abc,242-x,x"},
		{"coloring too large", "v2-243,242-x,x"},
		{"hint index out of range", "v2-0,242-x,9z"},
		{"hint letter invalid", "v2-0,242-x,2Z"},
		{"hint missing letter", "v2-0,242-x,2"},
		{"URL without puzzle param", "https://crosswordle.vercel.app/?p=v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.s, 5); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.s)
			}
		})
	}
}

func TestHint_Matches(t *testing.T) {
	h := Hint{{Index: 2, Letter: 'x'}}

	tests := []struct {
		word primitives.Word
		want bool
	}{
		{"boxer", true},
		{"pixel", true},
		{"crate", false},
		{"ax", false}, // shorter than the hint index
	}

	for _, tt := range tests {
		if got := h.Matches(tt.word); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestPuzzle_FilterOptions(t *testing.T) {
	p, err := Parse("v2-0,242-x,2x", 5)
	if err != nil {
		t.Fatal(err)
	}

	got := p.FilterOptions([]primitives.Word{"boxer", "crate", "pixel"})
	want := []primitives.Word{"boxer", "pixel"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("FilterOptions = %v, want %v", got, want)
	}
}
