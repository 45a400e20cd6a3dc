package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/nlmunicipality/internal/matcher"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tables, err := refdata.NewDirSource("../refdata/testdata").Load(context.Background())
	require.NoError(t, err)
	cfg := matcher.DefaultConfig()
	cfg.ReferenceYear = 2024
	engine, err := matcher.NewEngine(tables, cfg, matcher.WithLogger(utils.Discard()))
	require.NoError(t, err)
	return NewRouter(NewHandler(engine, 2, utils.Discard()), utils.Discard())
}

func do(t *testing.T, r http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestGuessHandler(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name     string
		query    url.Values
		expected Guess
	}{
		{
			name:     "colloquial name",
			query:    url.Values{"location": {"Den Haag"}},
			expected: Guess{Location: "Den Haag", Municipality: "'s-Gravenhage", Method: matcher.MethodMunicipality, Found: true},
		},
		{
			name:     "former municipality with date",
			query:    url.Values{"location": {"Haarlemmerliede en Spaarnwoude"}, "date": {"2020"}},
			expected: Guess{Location: "Haarlemmerliede en Spaarnwoude", Municipality: "Haarlemmermeer", Method: matcher.MethodHistory, Found: true},
		},
		{
			name:     "province scope",
			query:    url.Values{"location": {"Haren"}, "province": {"Noord-Brabant"}},
			expected: Guess{Location: "Haren", Municipality: "Oss", Method: matcher.MethodPlace, Found: true},
		},
		{
			name:     "fuzzy disabled",
			query:    url.Values{"location": {"Amsterdan"}, "check_fuzzy": {"false"}},
			expected: Guess{Location: "Amsterdan", Method: matcher.MethodNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodGet, "/api/v1/guess?"+tt.query.Encode(), "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "success", env.Status)

			var got Guess
			require.NoError(t, json.Unmarshal(env.Data, &got))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGuessHandlerErrors(t *testing.T) {
	r := newRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/guess", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "location is required", env.Message)

	w, _ = do(t, r, http.MethodGet, "/api/v1/guess?location=Oss&threshold_fuzzy=high", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchHandler(t *testing.T) {
	r := newRouter(t)

	body := `{"locations": ["Den Haag", 363, "xyzzy", "Zaandam"], "check_fuzzy": false}`
	w, env := do(t, r, http.MethodPost, "/api/v1/guess/batch", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4 locations resolved", env.Message)

	var got []Guess
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 4)
	assert.Equal(t, "'s-Gravenhage", got[0].Municipality)
	assert.Equal(t, "363", got[1].Location)
	assert.Equal(t, "Amsterdam", got[1].Municipality)
	assert.False(t, got[2].Found)
	assert.Equal(t, matcher.MethodNone, got[2].Method)
	assert.Equal(t, "Zaanstad", got[3].Municipality)
}

func TestBatchHandlerErrors(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"locations": [`},
		{"empty", `{"locations": []}`},
		{"wrong type", `{"locations": "Oss"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/api/v1/guess/batch", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "error", env.Status)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/guess?location=Oss", "")
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, env.RequestID)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestHealthAndMetrics(t *testing.T) {
	r := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "OK", health["status"])
	assert.NotZero(t, health["municipalities"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nlm_requests_total")
}
