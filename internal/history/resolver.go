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

// Package history resolves names of former municipalities to the current
// municipality that absorbed them. Two sources are chained: the encyclopedia
// list of former municipalities and the official register of municipality
// codes with its change descriptions.
package history

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/TFMV/nlmunicipality/internal/fuzzy"
	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

// Query is one historical lookup. Name must already be cleaned.
type Query struct {
	Name      string
	Scope     index.Scope
	Period    *Period
	Fuzzy     bool
	Variants  bool
	Threshold int
	Scorer    fuzzy.Scorer
}

// Resolver answers lookups against both chains. It is read-only after
// construction.
type Resolver struct {
	encyclopedia []candidate
	register     []candidate
	reg          *Register
	enc          *Encyclopedia
}

// Config holds the chain parameters.
type Config struct {
	RatioThreshold float64
	ReferenceYear  int
}

// NewResolver builds both chains from the tables.
func NewResolver(t *refdata.Tables, roster Roster, cfg Config) *Resolver {
	if cfg.RatioThreshold <= 0 {
		cfg.RatioThreshold = DefaultRatioThreshold
	}
	r := &Resolver{
		enc: BuildEncyclopedia(t.Encyclopedia, roster, cfg.ReferenceYear, cfg.RatioThreshold),
		reg: BuildRegister(t.Register, roster, cfg.RatioThreshold),
	}
	for _, e := range r.enc.entries {
		r.encyclopedia = append(r.encyclopedia, e.candidate())
	}
	for _, e := range r.reg.entries {
		r.register = append(r.register, e.candidate())
	}
	return r
}

// Encyclopedia returns the encyclopedia chain.
func (r *Resolver) Encyclopedia() *Encyclopedia {
	return r.enc
}

// Register returns the register chain.
func (r *Resolver) Register() *Register {
	return r.reg
}

var codeLike = regexp.MustCompile(`(?i)^(?:gm)?(\d{1,4})$`)

// Lookup tries the encyclopedia first and then the register. A match is
// accepted only if all matching records agree on one current municipality.
func (r *Resolver) Lookup(q Query) (string, bool) {
	if q.Scorer == nil {
		q.Scorer = fuzzy.TokenSort
	}
	if name, ok := match(r.encyclopedia, q); ok {
		return name, true
	}
	if !q.Fuzzy {
		if m := codeLike.FindStringSubmatch(q.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			if e, ok := r.reg.Entry(fmt.Sprintf("GM%04d", n)); ok && e.Resolved != "" {
				return e.Resolved, true
			}
		}
	}
	return match(r.register, q)
}

type candidate struct {
	key      string
	variants []string
	scope    index.Scope
	interval Interval
	target   string
}

func (c candidate) names(variants bool) []string {
	if !variants {
		return []string{c.key}
	}
	return append([]string{c.key}, c.variants...)
}

// match filters by province, picks the records named q.Name (or the best fuzzy
// key) and narrows them to the query period. Records valid during the period
// are preferred; if none are, records that had started by then are used, so a
// name dissolved before the period still resolves.
func match(all []candidate, q Query) (string, bool) {
	var pool []candidate
	for _, c := range all {
		if !q.Scope.IsGlobal() && !c.scope.IsGlobal() && c.scope != q.Scope {
			continue
		}
		if q.Period != nil && !c.interval.StartedBy(*q.Period) {
			continue
		}
		pool = append(pool, c)
	}
	if len(pool) == 0 {
		return "", false
	}

	name := q.Name
	if q.Fuzzy {
		seen := make(map[string]bool)
		var keys []string
		for _, c := range pool {
			for _, n := range c.names(q.Variants) {
				if !seen[n] {
					seen[n] = true
					keys = append(keys, n)
				}
			}
		}
		m, ok := fuzzy.BestMatch(q.Name, keys, q.Threshold, q.Scorer)
		if !ok {
			return "", false
		}
		name = m.Key
	}

	var hits []candidate
	for _, c := range pool {
		for _, n := range c.names(q.Variants) {
			if n == name {
				hits = append(hits, c)
				break
			}
		}
	}
	if q.Period != nil {
		var valid []candidate
		for _, c := range hits {
			if c.interval.Overlaps(*q.Period) {
				valid = append(valid, c)
			}
		}
		if len(valid) > 0 {
			hits = valid
		}
	}
	return single(hits)
}

// single returns the shared target of hits. An unresolved record counts as a
// target of its own.
func single(hits []candidate) (string, bool) {
	if len(hits) == 0 {
		return "", false
	}
	targets := make(map[string]bool)
	for _, c := range hits {
		targets[c.target] = true
	}
	if len(targets) != 1 {
		return "", false
	}
	target := hits[0].target
	return target, target != ""
}
