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

// Package matcher resolves free-text Dutch location values to the name of a
// current municipality.
package matcher

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/TFMV/nlmunicipality/internal/cache"
	"github.com/TFMV/nlmunicipality/internal/fuzzy"
	"github.com/TFMV/nlmunicipality/internal/history"
	"github.com/TFMV/nlmunicipality/internal/index"
	"github.com/TFMV/nlmunicipality/internal/standardizer"
	"github.com/TFMV/nlmunicipality/pkg/refdata"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

// Result and Method are shared with the cache so cached outcomes carry their
// tag.
type (
	Result = cache.Result
	Method = cache.Method
)

const (
	MethodNone               = cache.MethodNone
	MethodLiteral            = cache.MethodLiteral
	MethodMunicipality       = cache.MethodMunicipality
	MethodHistory            = cache.MethodHistory
	MethodPlace              = cache.MethodPlace
	MethodNeighbourhood      = cache.MethodNeighbourhood
	MethodMunicipalityFuzzy  = cache.MethodMunicipalityFuzzy
	MethodHistoryFuzzy       = cache.MethodHistoryFuzzy
	MethodPlaceFuzzy         = cache.MethodPlaceFuzzy
	MethodNeighbourhoodFuzzy = cache.MethodNeighbourhoodFuzzy
)

// DefaultThreshold is the fuzzy acceptance score used when a query sets none.
const DefaultThreshold = 85

// Config holds the build-time parameters of an Engine.
type Config struct {
	Threshold      int
	RatioThreshold float64
	ReferenceYear  int
	Scorer         string
	Recode         map[string]string
	Standardizer   standardizer.Config
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:      DefaultThreshold,
		RatioThreshold: history.DefaultRatioThreshold,
		Scorer:         "token_sort",
		Recode:         index.DefaultRecode,
		Standardizer:   standardizer.DefaultConfig(),
	}
}

// Engine answers queries against one set of reference tables. It is built
// once and is safe for concurrent use.
type Engine struct {
	cfg     Config
	index   *index.Index
	std     *standardizer.Standardizer
	history *history.Resolver
	scorer  fuzzy.Scorer
	choices map[choiceKey]*fuzzy.Choices
	cache   cache.Cache
	log     *utils.Logger
	hook    func(Method)
}

type choiceKey struct {
	scope index.Scope
	kind  index.Kind
}

// EngineOption customizes NewEngine.
type EngineOption func(*Engine)

// WithCache replaces the default in-memory cache.
func WithCache(c cache.Cache) EngineOption {
	return func(e *Engine) {
		if c != nil {
			e.cache = c
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *utils.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithLookupHook registers f to be called once per tier lookup.
func WithLookupHook(f func(Method)) EngineOption {
	return func(e *Engine) {
		e.hook = f
	}
}

// NewEngine indexes the tables and builds both historical chains. It fails
// only when the municipality roster is missing.
func NewEngine(t *refdata.Tables, cfg Config, opts ...EngineOption) (*Engine, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	scorer, err := fuzzy.ScorerByName(cfg.Scorer)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}

	e := &Engine{
		cfg:     cfg,
		scorer:  scorer,
		choices: make(map[choiceKey]*fuzzy.Choices),
		cache:   cache.NewMemory(),
		log:     utils.NewLogger("matcher"),
		hook:    func(Method) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.hook == nil {
		e.hook = func(Method) {}
	}

	e.index = index.Build(t, cfg.Recode)

	sc := cfg.Standardizer
	sc.Remove = append(append([]string(nil), sc.Remove...), e.index.FillerWords()...)
	e.std = standardizer.New(sc)

	e.history = history.NewResolver(t, e.index, history.Config{
		RatioThreshold: cfg.RatioThreshold,
		ReferenceYear:  cfg.ReferenceYear,
	})

	for _, scope := range e.index.Scopes() {
		for _, kind := range []index.Kind{index.Municipalities, index.Places, index.Neighbourhoods} {
			e.choices[choiceKey{scope, kind}] = fuzzy.NewChoices(e.index.Keys(scope, kind), scorer)
		}
	}

	m, p, n := e.index.Size(index.Global)
	e.log.Info("engine ready",
		"municipalities", m,
		"places", p,
		"neighbourhoods", n,
		"encyclopedia", e.history.Encyclopedia().Len(),
		"register", e.history.Register().Len(),
		"unresolved_codes", len(e.history.Register().Unresolved()),
		"scopes", len(e.index.Scopes()),
	)
	return e, nil
}

// Index exposes the lookup dictionaries.
func (e *Engine) Index() *index.Index { return e.index }

// History exposes the historical chains.
func (e *Engine) History() *history.Resolver { return e.history }

// Guess returns the municipality for location, or false.
func (e *Engine) Guess(ctx context.Context, location string, opts Options) (string, bool) {
	r := e.Resolve(ctx, location, opts)
	return r.Name, r.Found()
}

// ResolveValue resolves a value of any scalar type. See ValueString.
func (e *Engine) ResolveValue(ctx context.Context, v any, opts Options) Result {
	s, ok := ValueString(v)
	if !ok {
		return cache.NotFound
	}
	return e.Resolve(ctx, s, opts)
}

// ValueString formats a scalar input value for lookup. Integers and integral
// floats are formatted without a fraction, so 363.0 becomes "363". It
// returns false for nil.
func ValueString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float32:
		return formatFloat(float64(x)), true
	case float64:
		return formatFloat(x), true
	case fmt.Stringer:
		return x.String(), true
	}
	return fmt.Sprint(v), true
}

func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// coerce rewrites a numeric-looking string such as "363.0" to its integer form.
func coerce(location string) string {
	s := strings.TrimSpace(location)
	if !strings.ContainsAny(s, ".eE") {
		return location
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return location
	}
	return formatFloat(f)
}

// Resolve maps one location to a current municipality. Misses are returned as
// a Result with MethodNone and are cached like hits.
func (e *Engine) Resolve(ctx context.Context, location string, opts Options) Result {
	location = coerce(location)
	o := opts.effective(e.cfg.Threshold)
	scope := e.index.Scope(o.Province)

	var period *history.Period
	if o.Date != "" {
		p, err := history.ParsePeriod(o.Date)
		if err != nil {
			e.log.Debug("ignoring unparsable date", "date", o.Date, "error", err)
			o.Date = ""
		} else {
			period = &p
			o.Date = p.String()
		}
	}

	key := cache.Key{
		Location:  location,
		Scope:     scope,
		Date:      o.Date,
		Flags:     o.flags(),
		Threshold: o.Threshold,
	}
	if r, ok := e.cache.Get(ctx, key); ok {
		return r
	}

	r := e.resolve(location, scope, period, o)
	e.cache.Set(ctx, key, r)
	e.log.Debug("resolved", "location", location, "scope", scope.String(), "name", r.Name, "method", string(r.Method))
	return r
}

type tier struct {
	method  Method
	enabled bool
	lookup  func(string) (string, bool)
}

func (e *Engine) resolve(location string, scope index.Scope, period *history.Period, o Options) Result {
	if strings.TrimSpace(location) == "" {
		return cache.NotFound
	}
	if o.Clean {
		if e.std.Ignored(location) {
			return cache.NotFound
		}
		// The prefix rule sees the whole input, before any delimiter split.
		if lit, ok := e.std.Disambiguate(location); ok {
			return Result{Name: lit, Method: MethodLiteral}
		}
	}

	subs := e.substrings(location, o)
	for _, s := range subs {
		if e.std.IsLiteral(s) {
			return Result{Name: s, Method: MethodLiteral}
		}
	}
	if len(subs) == 0 {
		return cache.NotFound
	}

	for _, t := range e.tiers(scope, period, o) {
		if !t.enabled {
			continue
		}
		for _, s := range subs {
			if name, ok := t.lookup(s); ok {
				return Result{Name: name, Method: t.method}
			}
		}
	}
	return cache.NotFound
}

// substrings splits and cleans location. Duplicates and pieces of one
// character are dropped.
func (e *Engine) substrings(location string, o Options) []string {
	pieces := []string{location}
	if o.Delimiters {
		pieces = e.std.Split(location)
	}
	seen := make(map[string]bool, len(pieces))
	var out []string
	for _, p := range pieces {
		var s string
		if o.Clean {
			var ok bool
			if s, ok = e.std.Clean(p); !ok {
				continue
			}
		} else {
			s = standardizer.Fold(p)
			if utf8.RuneCountInString(s) <= 1 {
				continue
			}
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) tiers(scope index.Scope, period *history.Period, o Options) []tier {
	exact := func(kind index.Kind, m Method) func(string) (string, bool) {
		return func(s string) (string, bool) {
			e.hook(m)
			return e.index.Lookup(scope, kind, s)
		}
	}
	approx := func(kind index.Kind, m Method) func(string) (string, bool) {
		return func(s string) (string, bool) {
			e.hook(m)
			c, ok := e.choices[choiceKey{scope, kind}]
			if !ok {
				return "", false
			}
			best, ok := c.Best(s, o.Threshold)
			if !ok {
				return "", false
			}
			return e.index.Lookup(scope, kind, best.Key)
		}
	}
	past := func(fz bool, m Method) func(string) (string, bool) {
		return func(s string) (string, bool) {
			e.hook(m)
			return e.history.Lookup(history.Query{
				Name:      s,
				Scope:     scope,
				Period:    period,
				Fuzzy:     fz,
				Variants:  o.CheckVariants,
				Threshold: o.Threshold,
				Scorer:    e.scorer,
			})
		}
	}

	return []tier{
		{MethodMunicipality, true, exact(index.Municipalities, MethodMunicipality)},
		{MethodHistory, o.CheckHistory, past(false, MethodHistory)},
		{MethodPlace, o.CheckPlaces, exact(index.Places, MethodPlace)},
		{MethodNeighbourhood, o.CheckNeighbourhoods, exact(index.Neighbourhoods, MethodNeighbourhood)},
		{MethodMunicipalityFuzzy, o.CheckMunicipalityFuzzy, approx(index.Municipalities, MethodMunicipalityFuzzy)},
		{MethodHistoryFuzzy, o.CheckHistoryFuzzy, past(true, MethodHistoryFuzzy)},
		{MethodPlaceFuzzy, o.CheckPlaceFuzzy, approx(index.Places, MethodPlaceFuzzy)},
		{MethodNeighbourhoodFuzzy, o.CheckNeighbourhoodFuzzy, approx(index.Neighbourhoods, MethodNeighbourhoodFuzzy)},
	}
}
