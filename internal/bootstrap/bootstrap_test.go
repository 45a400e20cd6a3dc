package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/nlmunicipality/internal/matcher"
	"github.com/TFMV/nlmunicipality/pkg/config"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Data.Dir = "../../pkg/refdata/testdata"
	cfg.Engine.ReferenceYear = 2024
	return cfg
}

func TestNew(t *testing.T) {
	ctx := context.Background()
	rt, err := New(ctx, testConfig(), utils.Discard())
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.Pool())
	got, ok := rt.Engine.Guess(ctx, "Den Haag", matcher.DefaultOptions())
	require.True(t, ok)
	assert.Equal(t, "'s-Gravenhage", got)

	rt.Engine.Guess(ctx, "Den Haag", matcher.DefaultOptions())
	assert.Equal(t, uint64(1), rt.Cache.Hits())
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		backend string
		addr    string
	}{
		{"none", "none", ""},
		{"redis without address", "redis", ""},
		{"unreachable redis", "redis", "127.0.0.1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Redis.Addr = tt.addr
			rt, err := New(ctx, cfg, utils.Discard())
			require.NoError(t, err)
			defer rt.Close()

			_, ok := rt.Engine.Guess(ctx, "Zaandam", matcher.DefaultOptions())
			assert.True(t, ok)
		})
	}
}

func TestNewMissingData(t *testing.T) {
	cfg := testConfig()
	cfg.Data.Dir = t.TempDir()
	_, err := New(context.Background(), cfg, utils.Discard())
	assert.ErrorIs(t, err, refdata.ErrMissingTable)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("NLM_DATA_DIR", "/srv/refdata")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/refdata", cfg.Data.Dir)

	t.Setenv("NLM_DATA_SOURCE", "sqlite")
	_, err = LoadConfig("")
	assert.Error(t, err)
}
