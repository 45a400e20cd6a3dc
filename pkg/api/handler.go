// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/internal/matcher"
	"github.com/TFMV/nlmunicipality/pkg/metrics"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

// MaxBatchSize caps the number of locations in one batch request.
const MaxBatchSize = 100000

// Guess is the answer for one location.
type Guess struct {
	Location     string         `json:"location"`
	Municipality string         `json:"municipality,omitempty"`
	Method       matcher.Method `json:"method"`
	Found        bool           `json:"found"`
}

// BatchRequest is the body of a batch request. Option fields sit next to
// the locations; absent options keep their defaults.
type BatchRequest struct {
	Locations []any `json:"locations"`
	matcher.Options
}

// Handler serves the resolver over HTTP.
type Handler struct {
	engine  *matcher.Engine
	workers int
	log     *utils.Logger
}

// NewHandler returns a Handler resolving with engine. Batches use at most
// workers goroutines.
func NewHandler(engine *matcher.Engine, workers int, log *utils.Logger) *Handler {
	if log == nil {
		log = utils.NewLogger("api")
	}
	return &Handler{engine: engine, workers: workers, log: log}
}

func newGuess(location string, r matcher.Result) Guess {
	metrics.ResolutionsTotal.WithLabelValues(string(r.Method)).Inc()
	return Guess{Location: location, Municipality: r.Name, Method: r.Method, Found: r.Found()}
}

// GuessHandler resolves the location query parameter. Options are read from
// the remaining query parameters.
func (h *Handler) GuessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		location := c.Query("location")
		if strings.TrimSpace(location) == "" {
			utils.SendError(c, http.StatusBadRequest, errors.New("location is required"))
			return
		}

		opts := matcher.DefaultOptions()
		if err := c.ShouldBindQuery(&opts); err != nil {
			utils.SendError(c, http.StatusBadRequest, fmt.Errorf("invalid options: %w", err))
			return
		}

		r := h.engine.Resolve(c.Request.Context(), location, opts)
		utils.SendJSON(c, http.StatusOK, "", newGuess(location, r))
	}
}

// BatchHandler resolves every location in the JSON body, in order.
func (h *Handler) BatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := BatchRequest{Options: matcher.DefaultOptions()}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendError(c, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
		if len(req.Locations) == 0 {
			utils.SendError(c, http.StatusBadRequest, errors.New("locations is required"))
			return
		}
		if len(req.Locations) > MaxBatchSize {
			utils.SendError(c, http.StatusRequestEntityTooLarge, fmt.Errorf("at most %d locations per batch", MaxBatchSize))
			return
		}
		metrics.BatchSize.Observe(float64(len(req.Locations)))

		locations := make([]string, len(req.Locations))
		for i, v := range req.Locations {
			locations[i], _ = matcher.ValueString(v)
		}

		results, err := h.engine.ResolveBatch(c.Request.Context(), locations, req.Options, h.workers)
		if err != nil {
			h.log.Error("batch failed", "error", err, "size", len(locations))
			utils.SendError(c, http.StatusInternalServerError, fmt.Errorf("batch failed: %w", err))
			return
		}

		out := make([]Guess, len(results))
		for i, r := range results {
			out[i] = newGuess(locations[i], r)
		}
		utils.SendJSON(c, http.StatusOK, fmt.Sprintf("%d locations resolved", len(out)), out)
	}
}

// HealthCheckHandler handles health check requests
func (h *Handler) HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		zuluTime := time.Now().UTC().Format(time.RFC3339)
		m, p, n := h.engine.Index().Size(index.Global)
		c.JSON(http.StatusOK, gin.H{
			"status":         "OK",
			"zuluTime":       zuluTime,
			"municipalities": m,
			"places":         p,
			"neighbourhoods": n,
		})
	}
}
