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

package index

// Scope restricts lookups to one province. The zero value is Global.
type Scope struct {
	province string
}

// Global covers the whole country.
var Global = Scope{}

// ProvinceScope returns the scope of a lower-cased province name.
func ProvinceScope(province string) Scope {
	return Scope{province: province}
}

// IsGlobal reports whether s is the national scope.
func (s Scope) IsGlobal() bool {
	return s.province == ""
}

// Province returns the lower-cased province name, or "" for Global.
func (s Scope) Province() string {
	return s.province
}

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return s.province
}

// Kind selects one of the dictionaries of a scope.
type Kind int

const (
	Municipalities Kind = iota
	Places
	Neighbourhoods
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Municipalities:
		return "municipalities"
	case Places:
		return "places"
	case Neighbourhoods:
		return "neighbourhoods"
	}
	return "unknown"
}

// abbreviations maps common province shorthands to their names.
var abbreviations = map[string]string{
	"nh":        "noord-holland",
	"n-h":       "noord-holland",
	"zh":        "zuid-holland",
	"z-h":       "zuid-holland",
	"nb":        "noord-brabant",
	"n-b":       "noord-brabant",
	"brabant":   "noord-brabant",
	"fr":        "fryslân",
	"fryslan":   "fryslân",
	"friesland": "fryslân",
	"gr":        "groningen",
	"dr":        "drenthe",
	"ov":        "overijssel",
	"gld":       "gelderland",
	"ge":        "gelderland",
	"ut":        "utrecht",
	"fl":        "flevoland",
	"zl":        "zeeland",
	"lb":        "limburg",
	"li":        "limburg",
}
