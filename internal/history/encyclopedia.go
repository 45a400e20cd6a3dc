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
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

// EncyclopediaEntry is a former municipality from the encyclopedia list.
type EncyclopediaEntry struct {
	Name      string
	Variants  []string
	Scope     index.Scope
	Interval  Interval
	Successor string
	Ratio     float64

	// Latest is the current municipality the chain ends in, "" if unresolved.
	Latest string

	key string
}

// Encyclopedia holds the usable encyclopedia records.
type Encyclopedia struct {
	entries []*EncyclopediaEntry
	byKey   map[string][]*EncyclopediaEntry
}

var (
	alsoKnownAs    = regexp.MustCompile(`(?i)\(\s*ook:?\s*([^)]*)\)`)
	successorSplit = regexp.MustCompile(`\s*(?:,|;|/|\sof\s)\s*`)
	populationNote = regexp.MustCompile(`(?i)^(.*?)\s*\(\s*([\d.]+)\s*inw\.?\s*\)$`)
)

// BuildEncyclopedia keeps the records that started by refYear and have one
// successor, then follows every record to its latest name. A successor cell
// listing several names qualifies only if every name carries a population
// and the largest share is at least threshold percent.
func BuildEncyclopedia(records []refdata.EncyclopediaRecord, roster Roster, refYear int, threshold float64) *Encyclopedia {
	en := &Encyclopedia{byKey: make(map[string][]*EncyclopediaEntry)}
	cutoff := time.Date(refYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	for _, rec := range records {
		successor, ratio, ok := successorOf(rec.Successor, threshold)
		if !ok {
			continue
		}
		iv := parseInterval(rec.Since, rec.Until)
		if refYear > 0 && !iv.Since.IsZero() && iv.Since.After(cutoff) {
			continue
		}
		key, variants := splitName(rec.Name)
		if key == "" {
			continue
		}
		e := &EncyclopediaEntry{
			Name:      strings.TrimSpace(rec.Name),
			Variants:  variants,
			Scope:     roster.Scope(rec.Province),
			Interval:  iv,
			Successor: successor,
			Ratio:     ratio,
			key:       key,
		}
		en.entries = append(en.entries, e)
		en.byKey[key] = append(en.byKey[key], e)
	}

	for _, e := range en.entries {
		en.follow(e, roster)
	}
	return en
}

// splitName lower-cases a name cell into its key and variants. "(ook: X, Y)"
// and "A / B" give variants; any other parenthesised qualifier is dropped from
// the key and the qualified form is kept as a variant.
func splitName(raw string) (string, []string) {
	name := strings.ToLower(strings.TrimSpace(footnote.ReplaceAllString(raw, "")))
	name = strings.TrimRight(name, "*")

	var variants []string
	for _, m := range alsoKnownAs.FindAllStringSubmatch(name, -1) {
		for _, v := range strings.Split(m[1], ",") {
			if v = strings.TrimSpace(v); v != "" {
				variants = append(variants, v)
			}
		}
	}
	name = strings.TrimSpace(alsoKnownAs.ReplaceAllString(name, ""))

	parts := strings.Split(name, " / ")
	name = strings.TrimSpace(parts[0])
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			variants = append(variants, p)
		}
	}

	if bare := strings.TrimSpace(qualifier.ReplaceAllString(name, "")); bare != name && bare != "" {
		variants = append(variants, name)
		name = bare
	}
	return name, variants
}

func successorOf(cell string, threshold float64) (string, float64, bool) {
	cell = strings.TrimSpace(footnote.ReplaceAllString(cell, ""))
	var names []string
	var pops []float64
	for _, p := range successorSplit.Split(cell, -1) {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		if m := populationNote.FindStringSubmatch(p); m != nil {
			names = append(names, strings.TrimSpace(m[1]))
			pops = append(pops, parsePopulation(m[2]))
			continue
		}
		names = append(names, p)
	}
	switch {
	case len(names) == 1:
		return names[0], 100, true
	case len(names) == 0 || len(pops) != len(names):
		return "", 0, false
	}
	total := floats.Sum(pops)
	if total <= 0 {
		return "", 0, false
	}
	i := floats.MaxIdx(pops)
	ratio := 100 * pops[i] / total
	if ratio < threshold {
		return "", ratio, false
	}
	return names[i], ratio, true
}

// follow moves from a record to the records of its successor that were valid
// when the predecessor ended, until a name with no later record. Several such
// records are accepted only if they all lead to the same municipality; a
// record succeeded by its own name ends the chain.
func (en *Encyclopedia) follow(e *EncyclopediaEntry, roster Roster) {
	e.Latest = en.latest(e, roster, map[*EncyclopediaEntry]bool{e: true})
}

// latest returns the current municipality e leads to, or "" when the chain
// is ambiguous, cyclic or ends outside the roster. path holds the records on
// the way to e.
func (en *Encyclopedia) latest(e *EncyclopediaEntry, roster Roster, path map[*EncyclopediaEntry]bool) string {
	key, _ := splitName(e.Successor)
	var next []*EncyclopediaEntry
	if key != e.key {
		next = en.successorsOf(key, e.Interval.Until)
	}
	if len(next) == 0 {
		name, _ := roster.Canonical(e.Successor)
		return name
	}

	target := ""
	for i, n := range next {
		if path[n] {
			return ""
		}
		path[n] = true
		t := en.latest(n, roster, path)
		delete(path, n)
		if t == "" || (i > 0 && t != target) {
			return ""
		}
		target = t
	}
	return target
}

func (en *Encyclopedia) successorsOf(key string, at time.Time) []*EncyclopediaEntry {
	var out []*EncyclopediaEntry
	for _, e := range en.byKey[key] {
		if at.IsZero() || e.Interval.Covers(at) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of usable records.
func (en *Encyclopedia) Len() int {
	return len(en.entries)
}

// Entries returns the records named key.
func (en *Encyclopedia) Entries(key string) []*EncyclopediaEntry {
	return en.byKey[strings.ToLower(key)]
}

func (e *EncyclopediaEntry) candidate() candidate {
	return candidate{
		key:      e.key,
		variants: e.Variants,
		scope:    e.Scope,
		interval: e.Interval,
		target:   e.Latest,
	}
}
