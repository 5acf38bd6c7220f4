package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "Sol Ring", expected: "sol ring"},
		{input: "  Sol \t Ring\n", expected: "sol ring"},
		{input: "Atraxa, Praetors' Voice", expected: "atraxa, praetors' voice"},
	}

	for _, row := range table {
		require.Equal(t, row.expected, NormalizeName(row.input))
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"Arcane Signet", "Sol Ring", "Solemn Simulacrum", "Command Tower"}

	matches := Closest("sol rng", candidates, 2)
	require.Len(t, matches, 2)
	require.Equal(t, "Sol Ring", matches[0].Name)
	require.GreaterOrEqual(t, matches[0].Similarity, matches[1].Similarity)

	require.Empty(t, Closest("sol ring", nil, 5))
}
