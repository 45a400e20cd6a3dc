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

package fuzzy

import (
	"math"
	"strings"
)

// Trigram scores the cosine similarity of character trigram counts. Word
// boundaries count as a space, so short names still produce trigrams.
var Trigram Scorer = ngramCosine{n: 3}

type ngramCosine struct {
	n int
}

func (ngramCosine) Prepare(s string) string {
	return " " + fold(s) + " "
}

func (g ngramCosine) Compare(a, b string) int {
	fa, fb := g.frequencies(a), g.frequencies(b)
	if len(fa) == 0 || len(fb) == 0 {
		return 0
	}

	var dot, magA, magB float64
	for k, va := range fa {
		if vb, ok := fb[k]; ok {
			dot += float64(va * vb)
		}
		magA += float64(va * va)
	}
	for _, vb := range fb {
		magB += float64(vb * vb)
	}
	return int(math.Round(100 * dot / (math.Sqrt(magA) * math.Sqrt(magB))))
}

// frequencies counts the n-grams of s, by rune.
func (g ngramCosine) frequencies(s string) map[string]int {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	r := []rune(s)
	freq := make(map[string]int, len(r))
	for i := 0; i+g.n <= len(r); i++ {
		freq[string(r[i:i+g.n])]++
	}
	return freq
}
