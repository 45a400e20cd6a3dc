package matcher

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/nlmunicipality/internal/cache"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

func loadTables(t *testing.T) *refdata.Tables {
	t.Helper()
	tables, err := refdata.NewDirSource("../../pkg/refdata/testdata").Load(context.Background())
	require.NoError(t, err)
	return tables
}

func newEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ReferenceYear = 2024
	e, err := NewEngine(loadTables(t), cfg, append([]EngineOption{WithLogger(utils.Discard())}, opts...)...)
	require.NoError(t, err)
	return e
}

func TestNewEngineRequiresRoster(t *testing.T) {
	_, err := NewEngine(&refdata.Tables{}, DefaultConfig(), WithLogger(utils.Discard()))
	require.Error(t, err)
	assert.ErrorIs(t, err, refdata.ErrMissingTable)

	cfg := DefaultConfig()
	cfg.Scorer = "soundex"
	_, err = NewEngine(loadTables(t), cfg, WithLogger(utils.Discard()))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	noFuzzy := DefaultOptions()
	noFuzzy.CheckFuzzy = false

	withDate := DefaultOptions()
	withDate.Date = "2020"

	tests := []struct {
		name     string
		location string
		opts     Options
		expected string
		method   Method
	}{
		{"colloquial name", "Den Haag", DefaultOptions(), "'s-Gravenhage", MethodMunicipality},
		{"exact", "Amsterdam", DefaultOptions(), "Amsterdam", MethodMunicipality},
		{"country removed", "Amsterdam, Nederland", DefaultOptions(), "Amsterdam", MethodMunicipality},
		{"province in brackets", "Amsterdam (Noord-Holland)", noFuzzy, "Amsterdam", MethodMunicipality},
		{"country in brackets", "Haarlemmermeer (Nederland)", noFuzzy, "Haarlemmermeer", MethodMunicipality},
		{"former municipality with province", "Sloten (Noord-Holland)", noFuzzy, "Amsterdam", MethodHistory},
		{"apostrophe form", "'s Gravenhage", DefaultOptions(), "'s-Gravenhage", MethodMunicipality},
		{"area code", "070", DefaultOptions(), "'s-Gravenhage", MethodMunicipality},
		{"bergen noord-holland", "Bergen NH", DefaultOptions(), "Bergen (NH.)", MethodLiteral},
		{"bergen limburg", "Bergen (L.)", DefaultOptions(), "Bergen (L.)", MethodLiteral},
		{"former municipality with date", "Haarlemmerliede en Spaarnwoude", withDate, "Haarlemmermeer", MethodHistory},
		{"history before place", "Sneek", DefaultOptions(), "Súdwest-Fryslân", MethodHistory},
		{"register chain", "Heerhugowaard", DefaultOptions(), "Dijk en Waard", MethodHistory},
		{"register code", "363", DefaultOptions(), "Amsterdam", MethodHistory},
		{"place", "Zaandam", DefaultOptions(), "Zaanstad", MethodPlace},
		{"neighbourhood", "Scheveningen", DefaultOptions(), "'s-Gravenhage", MethodNeighbourhood},
		{"fuzzy municipality", "Amsterdan", DefaultOptions(), "Amsterdam", MethodMunicipalityFuzzy},
		{"fuzzy place", "Zandam", DefaultOptions(), "Zaanstad", MethodPlaceFuzzy},
		{"nonsense without fuzzy", "xyzzy", noFuzzy, "", MethodNone},
		{"empty", "   ", DefaultOptions(), "", MethodNone},
		{"split below threshold", "Littenseradiel", noFuzzy, "", MethodNone},
		{"chain to unknown code", "Verdwenen", noFuzzy, "", MethodNone},
		{"chain through split", "Achttienhoven", noFuzzy, "", MethodNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Resolve(ctx, tt.location, tt.opts)
			assert.Equal(t, tt.expected, r.Name)
			assert.Equal(t, tt.method, r.Method)
			assert.Equal(t, tt.expected != "", r.Found())
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	for _, m := range loadTables(t).Municipalities {
		t.Run(m.Name, func(t *testing.T) {
			got, ok := e.Guess(ctx, m.Name, DefaultOptions())
			require.True(t, ok)
			assert.Equal(t, m.Name, got)

			again, ok := e.Guess(ctx, strings.ToLower(got), DefaultOptions())
			require.True(t, ok)
			assert.Equal(t, got, again)
		})
	}
}

func TestResolveDisambiguatesBeforeSplit(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.Delimiters = true

	tests := []struct {
		location string
		expected string
	}{
		{"Bergen (NH)", "Bergen (NH.)"},
		{"Bergen (Noord-Holland)", "Bergen (NH.)"},
		{"Bergen (L)", "Bergen (L.)"},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			r := e.Resolve(ctx, tt.location, opts)
			assert.Equal(t, tt.expected, r.Name)
			assert.Equal(t, MethodLiteral, r.Method)
		})
	}
}

func TestResolveTierPriority(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.Delimiters = true

	// The municipality tier runs over every piece before the place tier.
	r := e.Resolve(ctx, "Zaandam | Amsterdam", opts)
	assert.Equal(t, "Amsterdam", r.Name)
	assert.Equal(t, MethodMunicipality, r.Method)

	r = e.Resolve(ctx, "Foo / Zaandam", opts)
	assert.Equal(t, "Zaanstad", r.Name)
	assert.Equal(t, MethodPlace, r.Method)

	// Without history Sneek falls through to the place table.
	opts = DefaultOptions()
	opts.CheckHistory = false
	r = e.Resolve(ctx, "Sneek", opts)
	assert.Equal(t, "Súdwest-Fryslân", r.Name)
	assert.Equal(t, MethodPlace, r.Method)

	// Disabling an exact tier disables its fuzzy tier too.
	opts = DefaultOptions()
	opts.CheckPlaces = false
	opts.CheckPlaceFuzzy = true
	r = e.Resolve(ctx, "Zandam", opts)
	assert.False(t, r.Found())

	// A literal wins whatever tiers are enabled.
	opts = Options{Clean: true}
	r = e.Resolve(ctx, "bergen n.h.", opts)
	assert.Equal(t, "Bergen (NH.)", r.Name)
	assert.Equal(t, MethodLiteral, r.Method)
}

func TestResolveScope(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		location string
		province string
		expected string
	}{
		{"ambiguous without province", "Haren", "", ""},
		{"groningen", "Haren", "Groningen", "Groningen"},
		{"brabant abbreviation", "Haren", "NB", "Oss"},
		{"outside its province", "Amsterdam", "Zuid-Holland", ""},
		{"inside its province", "Amsterdam", "Noord-Holland", "Amsterdam"},
		{"unknown province is global", "Amsterdam", "Gelderland", "Amsterdam"},
		{"neighbourhood in scope", "Centrum", "Zuid-Holland", "Rotterdam"},
		{"recode in every scope", "Den Haag", "Noord-Holland", "'s-Gravenhage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Province = tt.province
			got, _ := e.Guess(ctx, tt.location, opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveThreshold(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	opts := DefaultOptions()
	opts.Threshold = 95
	_, ok := e.Guess(ctx, "Amsterdan", opts)
	assert.False(t, ok)

	opts.Threshold = 80
	got, ok := e.Guess(ctx, "Amsterdan", opts)
	assert.True(t, ok)
	assert.Equal(t, "Amsterdam", got)
}

func TestResolveIgnoresBadDate(t *testing.T) {
	e := newEngine(t)

	opts := DefaultOptions()
	opts.Date = "sometime last week"
	r := e.Resolve(context.Background(), "Haarlemmerliede en Spaarnwoude", opts)
	assert.Equal(t, "Haarlemmermeer", r.Name)
	assert.Equal(t, MethodHistory, r.Method)
}

func TestResolveValue(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		value any
	}{
		{"int", 363},
		{"int64", int64(363)},
		{"float", 363.0},
		{"numeric string", "363.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.ResolveValue(ctx, tt.value, DefaultOptions())
			assert.Equal(t, "Amsterdam", r.Name)
			assert.Equal(t, MethodHistory, r.Method)
		})
	}

	assert.False(t, e.ResolveValue(ctx, nil, DefaultOptions()).Found())
}

func TestResolveCaches(t *testing.T) {
	var lookups atomic.Int64
	counting := cache.NewCounting(cache.NewMemory())
	e := newEngine(t,
		WithCache(counting),
		WithLookupHook(func(Method) { lookups.Add(1) }),
	)
	ctx := context.Background()

	r := e.Resolve(ctx, "Zaandam", DefaultOptions())
	require.Equal(t, "Zaanstad", r.Name)
	first := lookups.Load()
	assert.Equal(t, int64(3), first, "municipality, history and place tiers")

	r = e.Resolve(ctx, "Zaandam", DefaultOptions())
	assert.Equal(t, "Zaanstad", r.Name)
	assert.Equal(t, first, lookups.Load(), "second query is served from the cache")
	assert.Equal(t, uint64(1), counting.Hits())

	// Misses are cached as well.
	noFuzzy := DefaultOptions()
	noFuzzy.CheckFuzzy = false
	e.Resolve(ctx, "xyzzy", noFuzzy)
	before := lookups.Load()
	e.Resolve(ctx, "xyzzy", noFuzzy)
	assert.Equal(t, before, lookups.Load())

	// A different parameter set is a different key.
	opts := DefaultOptions()
	opts.Province = "Noord-Holland"
	e.Resolve(ctx, "Zaandam", opts)
	assert.Greater(t, lookups.Load(), before)
}

func TestResolveBatch(t *testing.T) {
	e := newEngine(t)

	got, err := e.ResolveBatch(context.Background(), []string{"Den Haag", "Zaandam", "xyzzy", "Sneek"}, DefaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "'s-Gravenhage", got[0].Name)
	assert.Equal(t, "Zaanstad", got[1].Name)
	assert.False(t, got[2].Found())
	assert.Equal(t, "Súdwest-Fryslân", got[3].Name)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.ResolveBatch(ctx, []string{"Amsterdam"}, DefaultOptions(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
