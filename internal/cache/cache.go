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

// Package cache memoizes resolution results per effective query.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/TFMV/nlmunicipality/internal/index"
)

// Method names the tier that produced a result.
type Method string

const (
	MethodNone               Method = "none"
	MethodLiteral            Method = "literal"
	MethodMunicipality       Method = "municipality"
	MethodHistory            Method = "history"
	MethodPlace              Method = "place"
	MethodNeighbourhood      Method = "neighbourhood"
	MethodMunicipalityFuzzy  Method = "municipality_fuzzy"
	MethodHistoryFuzzy       Method = "history_fuzzy"
	MethodPlaceFuzzy         Method = "place_fuzzy"
	MethodNeighbourhoodFuzzy Method = "neighbourhood_fuzzy"
)

// Result is the outcome of one query. A miss has Method "none" and no Name.
type Result struct {
	Name   string `json:"name,omitempty"`
	Method Method `json:"method"`
}

// Found reports whether the result names a municipality.
func (r Result) Found() bool {
	return r.Name != "" && r.Method != MethodNone
}

// NotFound is the cached "no match" outcome.
var NotFound = Result{Method: MethodNone}

// Key is the full effective parameter set of a query.
type Key struct {
	Location  string
	Scope     index.Scope
	Date      string
	Flags     uint16
	Threshold int
}

// String encodes the key for external stores.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(k.Location))
	b.WriteByte('|')
	b.WriteString(k.Scope.String())
	b.WriteByte('|')
	b.WriteString(k.Date)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(k.Flags), 16))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(k.Threshold))
	return b.String()
}

// Cache stores results. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key Key) (Result, bool)
	Set(ctx context.Context, key Key, r Result)
}

// Memory is an unbounded in-process cache. Entries are never evicted; the
// reference data does not change during the life of an engine.
type Memory struct {
	mu      sync.RWMutex
	entries map[Key]Result
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[Key]Result)}
}

func (m *Memory) Get(_ context.Context, key Key) (Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.entries[key]
	return r, ok
}

func (m *Memory) Set(_ context.Context, key Key, r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = r
}

// Len returns the number of cached queries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, Key) (Result, bool) { return Result{}, false }
func (Noop) Set(context.Context, Key, Result)        {}

// Counting counts hits and misses of the cache it wraps.
type Counting struct {
	next   Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCounting wraps next.
func NewCounting(next Cache) *Counting {
	return &Counting{next: next}
}

func (c *Counting) Get(ctx context.Context, key Key) (Result, bool) {
	r, ok := c.next.Get(ctx, key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return r, ok
}

func (c *Counting) Set(ctx context.Context, key Key, r Result) {
	c.next.Set(ctx, key, r)
}

// Hits returns the number of Get calls that found an entry.
func (c *Counting) Hits() uint64 { return c.hits.Load() }

// Misses returns the number of Get calls that found nothing.
func (c *Counting) Misses() uint64 { return c.misses.Load() }
