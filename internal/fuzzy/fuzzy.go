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

// Package fuzzy scores candidate keys against a query string and picks the
// best one above a threshold.
package fuzzy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Scorer compares two strings on a 0-100 scale. Prepare is applied once per
// string, Compare works on prepared strings.
type Scorer interface {
	Prepare(s string) string
	Compare(a, b string) int
}

var (
	// TokenSort is an order-insensitive indel ratio over sorted tokens.
	TokenSort Scorer = tokenSort{}
	// Edit is a plain Levenshtein ratio over the folded strings.
	Edit Scorer = editRatio{}
)

// ScorerByName maps a configuration value to a Scorer.
func ScorerByName(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "token_sort", "token-sort":
		return TokenSort, nil
	case "edit", "levenshtein":
		return Edit, nil
	case "trigram", "ngram":
		return Trigram, nil
	}
	return nil, fmt.Errorf("fuzzy: unknown scorer %q", name)
}

// Ratio scores a against b with the given scorer.
func Ratio(s Scorer, a, b string) int {
	return s.Compare(s.Prepare(a), s.Prepare(b))
}

// TokenSortRatio is Ratio with the TokenSort scorer.
func TokenSortRatio(a, b string) int {
	return Ratio(TokenSort, a, b)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lower-cases s, strips diacritics and turns everything that is not a
// letter or digit into a single space.
func fold(s string) string {
	folded, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	folded = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

type tokenSort struct{}

func (tokenSort) Prepare(s string) string {
	tokens := strings.Fields(fold(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// Compare returns round(100 * (lensum - d) / lensum) where d is the indel
// distance (substitution costs two).
func (tokenSort) Compare(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	lensum := len(a) + len(b)
	d := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(math.Round(100 * float64(lensum-d) / float64(lensum)))
}

type editRatio struct{}

func (editRatio) Prepare(s string) string {
	return fold(s)
}

func (editRatio) Compare(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}
