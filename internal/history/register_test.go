package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

func testRoster(names ...string) *index.Index {
	t := &refdata.Tables{}
	for _, n := range names {
		t.Municipalities = append(t.Municipalities, refdata.Municipality{Name: n, Province: "Utrecht"})
	}
	return index.Build(t, nil)
}

var registerFixture = []refdata.RegisterRecord{
	{Code: "GM0001", Name: "Oudstad", Since: "1812-01-01", Until: "1950-01-01",
		Description: "Opgeheven per 1-1-1950, verdeeld over GM0002 (600 inw.) en GM0003 (400 inw.)."},
	{Code: "GM0002", Name: "Nieuwstad", Since: "1812-01-01", Description: "Ontstaan per 1-1-1812."},
	{Code: "GM0003", Name: "Anderstad", Since: "1812-01-01", Description: "Ontstaan per 1-1-1812."},

	{Code: "GM0010", Name: "Lusdorp", Until: "1990-01-01", Description: "Naamswijziging per 1-1-1990, voortgezet als GM0011."},
	{Code: "GM0011", Name: "Kringdorp", Until: "1991-01-01", Description: "Naamswijziging per 1-1-1991, voortgezet als GM0010."},
	{Code: "GM0012", Name: "Zelfdorp", Until: "1992-01-01", Description: "Naamswijziging per 1-1-1992, voortgezet als GM0012."},

	{Code: "GM0020", Name: "Eerstdorp", Until: "1960-01-01",
		Description: "Opgeheven per 1-1-1960, verdeeld over GM0021 (800 inw.) en GM0003 (200 inw.)."},
	{Code: "GM0021", Name: "Tweededorp", Until: "1970-01-01",
		Description: "Opgeheven per 1-1-1970, verdeeld over GM0002 (900 inw.) en GM0003 (100 inw.)."},

	{Code: "GM0030", Name: "Zoekdorp", Until: "1900-01-01", Description: "Opgeheven per 1-1-1900, toegevoegd aan GM0999."},
	{Code: "GM0040", Name: "Spookstad", Description: "Ontstaan per 1-1-1812."},
	{Code: "GM0050", Name: "Stilstad", Until: "1960-01-01"},
}

func buildFixtureRegister(threshold float64) *Register {
	return BuildRegister(registerFixture, testRoster("Nieuwstad", "Anderstad"), threshold)
}

func TestRegisterRatioBoundary(t *testing.T) {
	at := buildFixtureRegister(60)
	e, ok := at.Entry("GM0001")
	require.True(t, ok)
	assert.InDelta(t, 60, e.Ratio, 1e-9)
	assert.Equal(t, "GM0002", e.Successor)
	assert.Equal(t, "Nieuwstad", e.Resolved, "a share equal to the threshold is accepted")

	above := buildFixtureRegister(60.5)
	e, ok = above.Entry("GM0001")
	require.True(t, ok)
	assert.Empty(t, e.Successor)
	assert.Empty(t, e.Resolved, "a share below the threshold leaves the record unresolved")
}

func TestRegisterCycleTerminates(t *testing.T) {
	r := buildFixtureRegister(DefaultRatioThreshold)

	for _, code := range []string{"GM0010", "GM0011", "GM0012"} {
		e, ok := r.Entry(code)
		require.True(t, ok, code)
		assert.Empty(t, e.Resolved, code)
	}
}

func TestRegisterChainMultipliesRatios(t *testing.T) {
	r := buildFixtureRegister(DefaultRatioThreshold)

	e, ok := r.Entry("gm0020")
	require.True(t, ok)
	assert.Equal(t, "Nieuwstad", e.Resolved)
	assert.Equal(t, "GM0002", e.ResolvedCode)
	assert.Equal(t, 2, e.Hops)
	assert.InDelta(t, 72, e.CumulativeRatio, 1e-9)

	e, ok = r.Entry("GM0002")
	require.True(t, ok)
	assert.True(t, e.Current)
	assert.Equal(t, "Nieuwstad", e.Resolved)
	assert.Equal(t, 0, e.Hops)
	assert.InDelta(t, 100, e.CumulativeRatio, 1e-9)
}

func TestRegisterUnresolved(t *testing.T) {
	r := buildFixtureRegister(DefaultRatioThreshold)

	assert.Equal(t, 11, r.Len())
	assert.Equal(t, []string{"GM0010", "GM0011", "GM0012", "GM0030", "GM0040", "GM0050"}, r.Unresolved())

	_, ok := r.Entry("GM0999")
	assert.False(t, ok)
}
