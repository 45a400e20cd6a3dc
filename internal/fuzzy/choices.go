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

// Match is the best scoring key for a query.
type Match struct {
	Key   string
	Score int
}

// Choices is a fixed key set with its prepared forms, so repeated queries
// do not prepare every key again.
type Choices struct {
	scorer   Scorer
	keys     []string
	prepared []string
}

// NewChoices prepares keys for scorer. Key order is kept and decides ties.
func NewChoices(keys []string, scorer Scorer) *Choices {
	c := &Choices{
		scorer:   scorer,
		keys:     keys,
		prepared: make([]string, len(keys)),
	}
	for i, k := range keys {
		c.prepared[i] = scorer.Prepare(k)
	}
	return c
}

// Len returns the number of keys.
func (c *Choices) Len() int {
	return len(c.keys)
}

// Best returns the highest scoring key if its score is at least threshold.
// On equal scores the key seen first wins.
func (c *Choices) Best(query string, threshold int) (Match, bool) {
	if c == nil || len(c.keys) == 0 {
		return Match{}, false
	}
	q := c.scorer.Prepare(query)
	if q == "" {
		return Match{}, false
	}
	best := Match{Score: -1}
	for i, p := range c.prepared {
		if score := c.scorer.Compare(q, p); score > best.Score {
			best = Match{Key: c.keys[i], Score: score}
		}
	}
	if best.Score < threshold {
		return Match{}, false
	}
	return best, true
}

// BestMatch scores query against keys without keeping the prepared set.
func BestMatch(query string, keys []string, threshold int, scorer Scorer) (Match, bool) {
	return NewChoices(keys, scorer).Best(query, threshold)
}
