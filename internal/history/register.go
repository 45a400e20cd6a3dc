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

package history

import (
	"regexp"
	"sort"
	"strings"

	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

// Roster resolves names and provinces against the current municipalities.
// *index.Index implements it.
type Roster interface {
	Canonical(name string) (string, bool)
	Scope(province string) index.Scope
}

// DefaultRatioThreshold is the population share a destination needs to count
// as the successor of a split municipality.
const DefaultRatioThreshold = 50.0

// RegisterEntry is a register record with its resolved chain.
type RegisterEntry struct {
	Code     string
	Name     string
	Scope    index.Scope
	Interval Interval
	Events   []ChangeEvent

	// Successor is the accepted next code, Ratio its local share.
	Successor string
	Ratio     float64

	// Current is set for records without a dissolution or rename.
	Current bool

	// Resolved is the current municipality the chain ends in, "" if it
	// could not be resolved. CumulativeRatio multiplies the local shares.
	Resolved        string
	ResolvedCode    string
	CumulativeRatio float64
	Hops            int

	key      string
	variants []string
}

// Register holds the official register keyed by code and name.
type Register struct {
	entries []*RegisterEntry
	byCode  map[string]*RegisterEntry
}

var qualifier = regexp.MustCompile(`\s*\([^)]*\)`)

// BuildRegister parses every description and follows each record to the
// municipality it lives on in. A dissolution whose largest destination holds
// less than threshold percent of the population has no successor.
func BuildRegister(records []refdata.RegisterRecord, roster Roster, threshold float64) *Register {
	r := &Register{byCode: make(map[string]*RegisterEntry, len(records))}
	for _, rec := range records {
		e := &RegisterEntry{
			Code:     strings.ToUpper(strings.TrimSpace(rec.Code)),
			Name:     strings.TrimSpace(rec.Name),
			Scope:    roster.Scope(rec.Province),
			Interval: parseInterval(rec.Since, rec.Until),
			Events:   ParseDescription(rec.Description),
		}
		e.key = strings.ToLower(e.Name)
		if bare := strings.TrimSpace(qualifier.ReplaceAllString(e.key, "")); bare != "" && bare != e.key {
			e.variants = append(e.variants, bare)
		}
		e.successor(threshold)
		r.entries = append(r.entries, e)
		if e.Code != "" {
			r.byCode[e.Code] = e
		}
	}
	for _, e := range r.entries {
		r.follow(e, roster)
	}
	return r
}

// successor sets the accepted successor from the last terminal event.
func (e *RegisterEntry) successor(threshold float64) {
	terminal := false
	for _, ev := range e.Events {
		switch ev := ev.(type) {
		case Dissolved:
			terminal = true
			e.Successor, e.Ratio = "", 0
			if code, ratio, ok := ev.Successor(); ok {
				e.Ratio = ratio
				if ratio >= threshold {
					e.Successor = code
				}
			}
		case Renamed:
			terminal = true
			e.Successor, e.Ratio = ev.Successor, 100
		}
	}
	e.Current = !terminal && e.Interval.Until.IsZero()
}

// follow walks successor codes until a current record, bounded by the number
// of records and a visited set.
func (r *Register) follow(e *RegisterEntry, roster Roster) {
	visited := make(map[*RegisterEntry]bool)
	cur, cumulative := e, 100.0
	for hops := 0; hops <= len(r.entries); hops++ {
		if visited[cur] {
			return
		}
		visited[cur] = true
		if cur.Current {
			if name, ok := roster.Canonical(cur.Name); ok {
				e.Resolved, e.ResolvedCode = name, cur.Code
				e.CumulativeRatio, e.Hops = cumulative, hops
			}
			return
		}
		next, ok := r.byCode[cur.Successor]
		if cur.Successor == "" || !ok {
			return
		}
		cumulative *= cur.Ratio / 100
		cur = next
	}
}

// Entry returns the record with the given code.
func (r *Register) Entry(code string) (*RegisterEntry, bool) {
	e, ok := r.byCode[strings.ToUpper(code)]
	return e, ok
}

// Len returns the number of records.
func (r *Register) Len() int {
	return len(r.entries)
}

// Unresolved lists the codes whose chain did not reach a current
// municipality, sorted.
func (r *Register) Unresolved() []string {
	var out []string
	for _, e := range r.entries {
		if e.Resolved == "" {
			out = append(out, e.Code)
		}
	}
	sort.Strings(out)
	return out
}

func (e *RegisterEntry) candidate() candidate {
	return candidate{
		key:      e.key,
		variants: e.variants,
		scope:    e.Scope,
		interval: e.Interval,
		target:   e.Resolved,
	}
}
