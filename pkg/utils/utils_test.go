package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerTo(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		format   string
		contains []string
		absent   []string
	}{
		{
			name:     "text default level",
			contains: []string{"component=index", "msg=loaded"},
			absent:   []string{"noise"},
		},
		{
			name:     "json debug",
			level:    "debug",
			format:   "json",
			contains: []string{`"component":"index"`, `"msg":"noise"`},
		},
		{
			name:     "error only",
			level:    "error",
			contains: []string{},
			absent:   []string{"loaded", "noise"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_FORMAT", tt.format)
			var buf bytes.Buffer
			log := NewLoggerTo(&buf, "index")
			log.Debug("noise")
			log.Info("loaded", "rows", 3)

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestSendJSONAndError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(RequestIDKey, "req-1") })
	r.GET("/ok", func(c *gin.Context) { SendJSON(c, http.StatusOK, "done", []int{1}) })
	r.GET("/fail", func(c *gin.Context) { SendError(c, http.StatusBadRequest, errors.New("bad input")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "success", got["status"])
	assert.Equal(t, "done", got["message"])
	assert.Equal(t, "req-1", got["request_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	got = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "error", got["status"])
	assert.Equal(t, "bad input", got["message"])
	assert.NotContains(t, got, "data")
}
