package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSortRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "identical", a: "Amsterdam", b: "amsterdam", expected: 100},
		{name: "token order", a: "Den Haag Zuid", b: "zuid den haag", expected: 100},
		{name: "accents and punctuation", a: "Súdwest-Fryslân", b: "sudwest fryslan", expected: 100},
		{name: "one substitution", a: "amsterdam", b: "amsterdan", expected: 89},
		{name: "one deletion", a: "amsterdm", b: "amsterdam", expected: 94},
		{name: "empty", a: "", b: "amsterdam", expected: 0},
		{name: "punctuation only", a: "--", b: "amsterdam", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenSortRatio(tt.a, tt.b); got != tt.expected {
				t.Errorf("TokenSortRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestEditRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio(Edit, "Súdwest-Fryslân", "sudwest fryslan"))
	assert.Equal(t, 89, Ratio(Edit, "amsterdam", "amsterdan"))
	assert.Equal(t, 0, Ratio(Edit, "", "amsterdam"))
	assert.Less(t, Ratio(Edit, "den haag", "haag den"), 100)
}

func TestScorerByName(t *testing.T) {
	s, err := ScorerByName("token_sort")
	require.NoError(t, err)
	assert.Equal(t, TokenSort, s)

	s, err = ScorerByName("")
	require.NoError(t, err)
	assert.Equal(t, TokenSort, s)

	s, err = ScorerByName("Edit")
	require.NoError(t, err)
	assert.Equal(t, Edit, s)

	_, err = ScorerByName("soundex")
	assert.Error(t, err)
}

func TestBestMatch(t *testing.T) {
	keys := []string{"amsterdam", "rotterdam", "zaanstad"}

	m, ok := BestMatch("Amsterdm", keys, 85, TokenSort)
	require.True(t, ok)
	assert.Equal(t, "amsterdam", m.Key)
	assert.Equal(t, 94, m.Score)

	_, ok = BestMatch("groningen", keys, 85, TokenSort)
	assert.False(t, ok)

	_, ok = BestMatch("", keys, 0, TokenSort)
	assert.False(t, ok)

	_, ok = BestMatch("amsterdam", nil, 0, TokenSort)
	assert.False(t, ok)
}

func TestBestMatchThresholdBoundary(t *testing.T) {
	keys := []string{"amsterdam"}

	m, ok := BestMatch("amsterdan", keys, 89, TokenSort)
	require.True(t, ok)
	assert.Equal(t, 89, m.Score)

	_, ok = BestMatch("amsterdan", keys, 90, TokenSort)
	assert.False(t, ok)
}

func TestBestMatchTieKeepsFirst(t *testing.T) {
	c := NewChoices([]string{"den haag", "haag den"}, TokenSort)
	assert.Equal(t, 2, c.Len())

	m, ok := c.Best("Haag Den", 85)
	require.True(t, ok)
	assert.Equal(t, "den haag", m.Key)
	assert.Equal(t, 100, m.Score)
}

func TestTrigram(t *testing.T) {
	assert.Equal(t, 100, Ratio(Trigram, "Súdwest-Fryslân", "sudwest fryslan"))
	assert.Equal(t, 0, Ratio(Trigram, "", "amsterdam"))
	assert.Greater(t, Ratio(Trigram, "amsterdam", "amsterdan"), Ratio(Trigram, "amsterdam", "rotterdam"))
	assert.Less(t, Ratio(Trigram, "amsterdam", "amsterdan"), 100)

	s, err := ScorerByName("trigram")
	require.NoError(t, err)
	assert.Equal(t, Trigram, s)
}
