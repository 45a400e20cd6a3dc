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

// Package metrics holds the Prometheus collectors of the resolver service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nlm_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nlm_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nlm_resolutions_total",
		Help: "Resolved locations by the tier that answered",
	}, []string{"method"})
	BatchSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nlm_batch_size",
		Help:    "Number of locations per batch request",
		Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(ResolutionsTotal)
	prometheus.MustRegister(BatchSize)
}

// HitCounter reports cache hits and misses.
type HitCounter interface {
	Hits() uint64
	Misses() uint64
}

// RegisterCache exposes the counters of c as nlm_cache_hits_total and
// nlm_cache_misses_total. It can be called once per process.
func RegisterCache(c HitCounter) error {
	hits := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "nlm_cache_hits_total",
		Help: "Total result cache hits",
	}, func() float64 { return float64(c.Hits()) })
	misses := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "nlm_cache_misses_total",
		Help: "Total result cache misses",
	}, func() float64 { return float64(c.Misses()) })
	if err := prometheus.Register(hits); err != nil {
		return err
	}
	return prometheus.Register(misses)
}

// Handler serves the default registry on /metrics.
func Handler() http.Handler { return promhttp.Handler() }
