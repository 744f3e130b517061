package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/cwsolve/pkg/primitives"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		want     string
	}{
		{"exact match", "abide", "abide", "22222"},
		{"no letters shared", "fghij", "abcde", "00000"},
		{"yellow with one duplicate", "speed", "abide", "00101"},
		{"three yellows", "erase", "speed", "10011"},
		{"greens then yellows", "steal", "stale", "22111"},
		{"duplicate guess letters", "allee", "apple", "21002"},
		{"second duplicate goes grey", "eerie", "siege", "10012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(primitives.Word(tt.guess), primitives.Word(tt.solution))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestScore_LengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		Score("abc", "abcde")
	})
}
