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

package standardizer

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Hint maps any of its substrings to a canonical literal.
type Hint struct {
	Substrings []string `yaml:"substrings"`
	Literal    string   `yaml:"literal"`
}

// Rule disambiguates inputs starting with Prefix. The first hint found wins.
type Rule struct {
	Prefix string `yaml:"prefix"`
	Hints  []Hint `yaml:"hints"`
}

// Config holds the word lists of a Standardizer.
type Config struct {
	Ignore     []string          `yaml:"ignore"`
	Remove     []string          `yaml:"remove"`
	Replace    map[string]string `yaml:"replace"`
	Delimiters []string          `yaml:"delimiters"`
	Rules      []Rule            `yaml:"rules"`
}

// Standardizer cleans raw location strings into lookup keys.
type Standardizer struct {
	ignore     map[string]bool
	remove     []string
	replace    map[string]string
	delimiters []string
	rules      []Rule
	literals   map[string]bool
}

var (
	space       = regexp.MustCompile(`\s+`)
	aanDen      = regexp.MustCompile(`(?i)(^|\s)a\s?[/.]\s?d\.?(\s|$)`)
	graven      = regexp.MustCompile(`^'?s[- ]?graven(\pL.*)$`)
	apostropheS = regexp.MustCompile(`^(?:'s\s*-?\s*|s-)(\pL)`)
	emptyParens = regexp.MustCompile(`[(\[]\s*[)\]]`)
	apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'", "´", "'")
)

// New builds a Standardizer. Word lists are lower-cased; removal entries are
// applied longest first.
func New(cfg Config) *Standardizer {
	s := &Standardizer{
		ignore:     make(map[string]bool, len(cfg.Ignore)),
		replace:    make(map[string]string, len(cfg.Replace)),
		delimiters: cfg.Delimiters,
		literals:   make(map[string]bool),
	}
	for _, w := range cfg.Ignore {
		s.ignore[Fold(w)] = true
	}

	seen := make(map[string]bool)
	for _, w := range cfg.Remove {
		w = Fold(w)
		if w != "" && !seen[w] {
			seen[w] = true
			s.remove = append(s.remove, w)
		}
	}
	sort.SliceStable(s.remove, func(i, j int) bool {
		return utf8.RuneCountInString(s.remove[i]) > utf8.RuneCountInString(s.remove[j])
	})

	for k, v := range cfg.Replace {
		s.replace[Fold(k)] = Fold(v)
	}

	for _, r := range cfg.Rules {
		rule := Rule{Prefix: Fold(r.Prefix) + " "}
		for _, h := range r.Hints {
			hint := Hint{Literal: h.Literal}
			for _, sub := range h.Substrings {
				hint.Substrings = append(hint.Substrings, strings.ToLower(sub))
			}
			rule.Hints = append(rule.Hints, hint)
			s.literals[h.Literal] = true
		}
		s.rules = append(s.rules, rule)
	}
	return s
}

// Fold lower-cases and trims s and normalizes typographic apostrophes.
func Fold(s string) string {
	return apostrophes.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// Disambiguate applies the prefix rules. A hint is matched against the input
// with a trailing space added, so " l " also matches "bergen l".
func (s *Standardizer) Disambiguate(raw string) (string, bool) {
	loc := Fold(raw)
	for _, r := range s.rules {
		if !strings.HasPrefix(loc, r.Prefix) {
			continue
		}
		padded := loc + " "
		for _, h := range r.Hints {
			for _, sub := range h.Substrings {
				if strings.Contains(padded, sub) {
					return h.Literal, true
				}
			}
		}
	}
	return "", false
}

// IsLiteral reports whether name is a disambiguated output.
func (s *Standardizer) IsLiteral(name string) bool {
	return s.literals[name]
}

// Literals returns every disambiguated output, sorted.
func (s *Standardizer) Literals() []string {
	out := make([]string, 0, len(s.literals))
	for l := range s.literals {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Ignored reports whether raw is on the ignore list.
func (s *Standardizer) Ignored(raw string) bool {
	return s.ignore[Fold(raw)]
}

// Clean turns one raw piece into a lookup key. A disambiguated literal is
// returned as is. The second result is false for ignored or degenerate input.
func (s *Standardizer) Clean(raw string) (string, bool) {
	if lit, ok := s.Disambiguate(raw); ok {
		return lit, true
	}
	loc := Fold(raw)
	if s.ignore[loc] {
		return "", false
	}

	loc = ExpandAbbreviations(loc)
	for _, w := range s.remove {
		loc = removeWord(loc, w)
	}
	// "amsterdam (noord-holland)" leaves "amsterdam ( )" behind.
	loc = emptyParens.ReplaceAllString(loc, " ")
	loc = strings.Trim(space.ReplaceAllString(loc, " "), " ,;:.-|")

	if m := graven.FindStringSubmatch(loc); m != nil {
		loc = "'s-graven" + m[1]
	} else {
		loc = apostropheS.ReplaceAllString(loc, "'s-$1")
	}

	if r, ok := s.replace[loc]; ok {
		loc = r
	}
	if utf8.RuneCountInString(loc) <= 1 {
		return "", false
	}
	return loc, true
}

// Split cuts raw on the configured delimiters after expanding "a/d", which
// would otherwise be split on its slash. Empty pieces are dropped.
func (s *Standardizer) Split(raw string) []string {
	loc := ExpandAbbreviations(raw)
	for _, d := range s.delimiters {
		if d != "" {
			loc = strings.ReplaceAll(loc, d, "\x00")
		}
	}
	var pieces []string
	for _, p := range strings.Split(loc, "\x00") {
		if p = strings.TrimSpace(p); p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// ExpandAbbreviations rewrites "a/d" and "a.d." to "aan den".
func ExpandAbbreviations(s string) string {
	// Run twice: adjacent matches share the separating space.
	for i := 0; i < 2; i++ {
		s = aanDen.ReplaceAllString(s, "${1}aan den${2}")
	}
	return s
}

// removeWord deletes every occurrence of w that is not glued to a letter or
// digit on either side.
func removeWord(s, w string) string {
	var b strings.Builder
	start, from := 0, 0
	for {
		i := strings.Index(s[from:], w)
		if i < 0 {
			break
		}
		i += from
		j := i + len(w)
		if atBoundary(s, i, j) {
			b.WriteString(s[start:i])
			b.WriteByte(' ')
			start, from = j, j
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		from = i + size
	}
	b.WriteString(s[start:])
	return b.String()
}

func atBoundary(s string, i, j int) bool {
	if i > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:i]); isWordRune(r) {
			return false
		}
	}
	if j < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[j:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsNumeric checks if a string contains only numeric characters
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
