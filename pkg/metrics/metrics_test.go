package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter struct{ hits, misses uint64 }

func (f fixedCounter) Hits() uint64   { return f.hits }
func (f fixedCounter) Misses() uint64 { return f.misses }

func TestRegisterCacheAndHandler(t *testing.T) {
	require.NoError(t, RegisterCache(fixedCounter{hits: 7, misses: 3}))
	assert.Error(t, RegisterCache(fixedCounter{}), "a second registration collides")

	ResolutionsTotal.WithLabelValues("place").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nlm_cache_hits_total 7")
	assert.Contains(t, rec.Body.String(), "nlm_cache_misses_total 3")
	assert.Contains(t, rec.Body.String(), `nlm_resolutions_total{method="place"} 1`)
}
