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

// Package index builds the per-province lookup dictionaries the resolver
// queries: municipalities, places and neighbourhoods, keyed by lower-cased name.
package index

import (
	"regexp"
	"sort"
	"strings"

	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

// DefaultRecode maps colloquial names onto official municipality names.
var DefaultRecode = map[string]string{
	"den bosch": "'s-Hertogenbosch",
	"den haag":  "'s-Gravenhage",
	"the hague": "'s-Gravenhage",
}

type dictionaries [numKinds]map[string]string

// Index holds one set of dictionaries per scope. It is read-only after Build.
type Index struct {
	scopes    map[Scope]*dictionaries
	keys      map[Scope]*[numKinds][]string
	provinces map[string]string
	roster    map[string]refdata.Municipality
}

// Build indexes the roster, places and neighbourhoods. A key that occurs in
// more than one row within a scope is left out of that scope, even when the
// rows agree on the municipality.
func Build(t *refdata.Tables, recode map[string]string) *Index {
	ix := &Index{
		scopes:    make(map[Scope]*dictionaries),
		keys:      make(map[Scope]*[numKinds][]string),
		provinces: make(map[string]string),
		roster:    make(map[string]refdata.Municipality),
	}
	if t == nil {
		t = &refdata.Tables{}
	}

	for _, m := range t.Municipalities {
		key := normalize(m.Name)
		if key == "" {
			continue
		}
		ix.roster[key] = m
		ix.addProvince(m.Province)
	}
	for _, p := range t.Places {
		ix.addProvince(p.Province)
	}

	candidates := make(map[Scope]*[numKinds]map[string]*occurrence)
	add := func(scope Scope, kind Kind, key, target string) {
		c, ok := candidates[scope]
		if !ok {
			c = &[numKinds]map[string]*occurrence{}
			for k := range c {
				c[k] = make(map[string]*occurrence)
			}
			candidates[scope] = c
		}
		if o := c[kind][key]; o != nil {
			o.rows++
			return
		}
		c[kind][key] = &occurrence{target: target, rows: 1}
	}
	addBoth := func(province string, kind Kind, key, target string) {
		add(Global, kind, key, target)
		if province != "" {
			add(ProvinceScope(province), kind, key, target)
		}
	}

	for key, m := range ix.roster {
		addBoth(ix.provinceKey(m.Province), Municipalities, key, m.Name)
	}

	// Neighbourhoods inherit the province a municipality has in the place table.
	placeProvince := make(map[string]string)
	for _, p := range t.Places {
		m, ok := ix.roster[normalize(p.Municipality)]
		key := normalize(p.Name)
		if !ok || key == "" {
			continue
		}
		province := ix.provinceKey(p.Province)
		if province == "" {
			province = ix.provinceKey(m.Province)
		}
		if _, seen := placeProvince[m.Name]; !seen {
			placeProvince[m.Name] = province
		}
		addBoth(province, Places, key, m.Name)
	}

	for _, n := range t.Neighbourhoods {
		m, ok := ix.roster[normalize(n.Municipality)]
		key := normalize(n.Name)
		if !ok || key == "" {
			continue
		}
		province, seen := placeProvince[m.Name]
		if !seen {
			province = ix.provinceKey(m.Province)
		}
		addBoth(province, Neighbourhoods, key, m.Name)
	}

	for scope, c := range candidates {
		d := &dictionaries{}
		for kind := range d {
			d[kind] = make(map[string]string)
			for key, o := range c[kind] {
				if o.rows == 1 {
					d[kind][key] = o.target
				}
			}
		}
		for k, v := range recode {
			if key := normalize(k); key != "" {
				d[Municipalities][key] = v
			}
		}
		ix.scopes[scope] = d
	}
	if _, ok := ix.scopes[Global]; !ok {
		d := &dictionaries{}
		for kind := range d {
			d[kind] = make(map[string]string)
		}
		ix.scopes[Global] = d
	}

	for scope, d := range ix.scopes {
		var keys [numKinds][]string
		for kind := range d {
			keys[kind] = make([]string, 0, len(d[kind]))
			for k := range d[kind] {
				keys[kind] = append(keys[kind], k)
			}
			sort.Strings(keys[kind])
		}
		ix.keys[scope] = &keys
	}
	return ix
}

type occurrence struct {
	target string
	rows   int
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (ix *Index) addProvince(name string) {
	key := normalize(name)
	if key == "" {
		return
	}
	if canonical, ok := abbreviations[key]; ok {
		key = canonical
	}
	if _, ok := ix.provinces[key]; !ok {
		ix.provinces[key] = strings.TrimSpace(name)
	}
}

// provinceKey resolves a province cell to its scope key, "" if unknown.
func (ix *Index) provinceKey(name string) string {
	key := normalize(name)
	if key == "" {
		return ""
	}
	if canonical, ok := abbreviations[strings.ReplaceAll(key, ".", "")]; ok {
		key = canonical
	}
	if _, ok := ix.provinces[key]; ok {
		return key
	}
	return ""
}

// Scope resolves a province name or abbreviation. Unknown names give Global.
func (ix *Index) Scope(province string) Scope {
	key := ix.provinceKey(province)
	if key == "" {
		return Global
	}
	if _, ok := ix.scopes[ProvinceScope(key)]; !ok {
		return Global
	}
	return ProvinceScope(key)
}

// Lookup returns the municipality a key maps to in scope.
func (ix *Index) Lookup(scope Scope, kind Kind, key string) (string, bool) {
	d, ok := ix.scopes[scope]
	if !ok {
		return "", false
	}
	v, ok := d[kind][key]
	return v, ok
}

// Municipality looks up a current municipality.
func (ix *Index) Municipality(scope Scope, key string) (string, bool) {
	return ix.Lookup(scope, Municipalities, key)
}

// Place looks up the municipality of a place.
func (ix *Index) Place(scope Scope, key string) (string, bool) {
	return ix.Lookup(scope, Places, key)
}

// Neighbourhood looks up the municipality of a neighbourhood.
func (ix *Index) Neighbourhood(scope Scope, key string) (string, bool) {
	return ix.Lookup(scope, Neighbourhoods, key)
}

// Keys lists the sorted keys of one dictionary.
func (ix *Index) Keys(scope Scope, kind Kind) []string {
	keys, ok := ix.keys[scope]
	if !ok {
		return nil
	}
	return keys[kind]
}

// Scopes returns every scope with a dictionary, Global first.
func (ix *Index) Scopes() []Scope {
	out := []Scope{Global}
	for _, p := range ix.Provinces() {
		if s := ProvinceScope(p); s != Global {
			if _, ok := ix.scopes[s]; ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// Canonical maps a municipality name, or a recoded alias, to its roster
// spelling.
func (ix *Index) Canonical(name string) (string, bool) {
	return ix.Municipality(Global, normalize(name))
}

// ProvinceOf returns the scope key of a current municipality's province.
func (ix *Index) ProvinceOf(municipality string) string {
	m, ok := ix.roster[normalize(municipality)]
	if !ok {
		return ""
	}
	return ix.provinceKey(m.Province)
}

// Provinces lists the lower-cased province names, sorted.
func (ix *Index) Provinces() []string {
	out := make([]string, 0, len(ix.provinces))
	for p := range ix.provinces {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// FillerWords lists province names that can be dropped from an input.
// Names that occur as a word in a municipality name are kept out.
func (ix *Index) FillerWords() []string {
	var out []string
	for _, p := range ix.Provinces() {
		word := regexp.MustCompile(`(^|[^\pL\pN])` + regexp.QuoteMeta(p) + `($|[^\pL\pN])`)
		shared := false
		for key := range ix.roster {
			if word.MatchString(key) {
				shared = true
				break
			}
		}
		if !shared {
			out = append(out, p)
		}
	}
	return out
}

// Size returns the number of keys per dictionary in scope.
func (ix *Index) Size(scope Scope) (municipalities, places, neighbourhoods int) {
	d, ok := ix.scopes[scope]
	if !ok {
		return 0, 0, 0
	}
	return len(d[Municipalities]), len(d[Places]), len(d[Neighbourhoods])
}
