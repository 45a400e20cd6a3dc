package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

func loadIndex(t *testing.T) *Index {
	t.Helper()
	tables, err := refdata.NewDirSource("../../pkg/refdata/testdata").Load(context.Background())
	require.NoError(t, err)
	return Build(tables, DefaultRecode)
}

func TestScope(t *testing.T) {
	ix := loadIndex(t)

	tests := []struct {
		input    string
		expected Scope
	}{
		{"Noord-Holland", ProvinceScope("noord-holland")},
		{"  zuid-holland ", ProvinceScope("zuid-holland")},
		{"NH", ProvinceScope("noord-holland")},
		{"N.H.", ProvinceScope("noord-holland")},
		{"N-B", ProvinceScope("noord-brabant")},
		{"Friesland", ProvinceScope("fryslân")},
		{"LI", ProvinceScope("limburg")},
		{"Gelderland", Global},
		{"Atlantis", Global},
		{"", Global},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ix.Scope(tt.input))
		})
	}

	assert.True(t, Global.IsGlobal())
	assert.Equal(t, "global", Global.String())
	assert.Equal(t, "limburg", ix.Scope("LB").String())
}

func TestMunicipalityLookup(t *testing.T) {
	ix := loadIndex(t)

	name, ok := ix.Municipality(Global, "amsterdam")
	require.True(t, ok)
	assert.Equal(t, "Amsterdam", name)

	name, ok = ix.Municipality(Global, "den haag")
	require.True(t, ok)
	assert.Equal(t, "'s-Gravenhage", name)

	// Recoded aliases exist in every scope.
	name, ok = ix.Municipality(ProvinceScope("limburg"), "den bosch")
	require.True(t, ok)
	assert.Equal(t, "'s-Hertogenbosch", name)

	_, ok = ix.Municipality(ProvinceScope("zuid-holland"), "amsterdam")
	assert.False(t, ok)

	name, ok = ix.Canonical("BERGEN (NH.)")
	require.True(t, ok)
	assert.Equal(t, "Bergen (NH.)", name)
}

func TestPlaceUniquenessPerScope(t *testing.T) {
	ix := loadIndex(t)

	_, ok := ix.Place(Global, "haren")
	assert.False(t, ok, "haren is ambiguous nationally")

	name, ok := ix.Place(ProvinceScope("groningen"), "haren")
	require.True(t, ok)
	assert.Equal(t, "Groningen", name)

	name, ok = ix.Place(ProvinceScope("noord-brabant"), "haren")
	require.True(t, ok)
	assert.Equal(t, "Oss", name)

	_, ok = ix.Place(Global, "hoofddorp")
	assert.False(t, ok, "a repeated row counts as a duplicate")
	_, ok = ix.Place(ProvinceScope("noord-holland"), "hoofddorp")
	assert.False(t, ok)

	_, ok = ix.Place(Global, "den helder")
	assert.False(t, ok, "places of unknown municipalities are skipped")
}

func TestNeighbourhoodProvinceFromPlaces(t *testing.T) {
	ix := loadIndex(t)

	_, ok := ix.Neighbourhood(Global, "centrum")
	assert.False(t, ok)

	name, ok := ix.Neighbourhood(ProvinceScope("noord-holland"), "centrum")
	require.True(t, ok)
	assert.Equal(t, "Amsterdam", name)

	name, ok = ix.Neighbourhood(ProvinceScope("zuid-holland"), "centrum")
	require.True(t, ok)
	assert.Equal(t, "Rotterdam", name)

	name, ok = ix.Neighbourhood(ProvinceScope("zuid-holland"), "scheveningen")
	require.True(t, ok)
	assert.Equal(t, "'s-Gravenhage", name)

	_, ok = ix.Neighbourhood(Global, "blaricum")
	assert.False(t, ok)
}

func TestKeysSorted(t *testing.T) {
	ix := loadIndex(t)

	keys := ix.Keys(ProvinceScope("limburg"), Places)
	assert.Equal(t, []string{"geleen", "nieuw-bergen"}, keys)
	assert.Nil(t, ix.Keys(ProvinceScope("atlantis"), Places))

	all := ix.Keys(Global, Municipalities)
	assert.IsIncreasing(t, all)
	assert.Contains(t, all, "the hague")
}

func TestFillerWords(t *testing.T) {
	ix := loadIndex(t)

	assert.Equal(t, []string{"drenthe", "fryslân", "groningen", "limburg", "noord-brabant", "noord-holland", "utrecht", "zuid-holland"}, ix.Provinces())
	// Groningen and Utrecht are municipalities too, and Fryslân is part of Súdwest-Fryslân.
	assert.Equal(t, []string{"drenthe", "limburg", "noord-brabant", "noord-holland", "zuid-holland"}, ix.FillerWords())
}

func TestScopes(t *testing.T) {
	ix := loadIndex(t)

	scopes := ix.Scopes()
	require.NotEmpty(t, scopes)
	assert.Equal(t, Global, scopes[0])
	assert.Len(t, scopes, 9)

	assert.Equal(t, "noord-holland", ix.ProvinceOf("Zaanstad"))
	assert.Equal(t, "", ix.ProvinceOf("Atlantis"))

	m, p, n := ix.Size(ProvinceScope("fryslân"))
	assert.Equal(t, 4+len(DefaultRecode), m)
	assert.Equal(t, 1, p)
	assert.Equal(t, 0, n)
}

func TestBuildEmpty(t *testing.T) {
	ix := Build(nil, nil)
	_, ok := ix.Municipality(Global, "amsterdam")
	assert.False(t, ok)
	assert.Empty(t, ix.Keys(Global, Municipalities))
	assert.Equal(t, Global, ix.Scope("Noord-Holland"))
}
