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
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Period is a closed span of days. A query date of "2001" covers the whole year.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) String() string {
	return p.Start.Format("2006-01-02") + "/" + p.End.Format("2006-01-02")
}

// Interval is the validity of a record. Zero bounds are open.
type Interval struct {
	Since time.Time
	Until time.Time
}

// Overlaps reports whether the interval shares at least one day with p.
func (iv Interval) Overlaps(p Period) bool {
	if !iv.Since.IsZero() && iv.Since.After(p.End) {
		return false
	}
	if !iv.Until.IsZero() && iv.Until.Before(p.Start) {
		return false
	}
	return true
}

// StartedBy reports whether the interval began on or before the end of p.
func (iv Interval) StartedBy(p Period) bool {
	return iv.Since.IsZero() || !iv.Since.After(p.End)
}

// Covers reports whether t lies within the interval, bounds included.
func (iv Interval) Covers(t time.Time) bool {
	return iv.Overlaps(Period{Start: t, End: t})
}

var months = map[string]time.Month{
	"januari": time.January, "jan": time.January,
	"februari": time.February, "feb": time.February,
	"maart": time.March, "mrt": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"mei":  time.May,
	"juni": time.June, "jun": time.June,
	"juli": time.July, "jul": time.July,
	"augustus": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"oktober": time.October, "okt": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	yearOnly  = regexp.MustCompile(`^(\d{4})$`)
	yearMonth = regexp.MustCompile(`^(\d{4})-(\d{1,2})$`)
	isoDate   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dmyDate   = regexp.MustCompile(`^(\d{1,2})[-/.](\d{1,2})[-/.](\d{4})$`)
	dutchDate = regexp.MustCompile(`^(?:(\d{1,2})\s+)?(\pL+)\.?\s+(\d{4})$`)
	footnote  = regexp.MustCompile(`\[[^\]]*\]`)
)

// ParsePeriod reads a year, a year-month, or a full date in ISO, d-m-yyyy or
// Dutch "d maand yyyy" form.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(footnote.ReplaceAllString(s, "")))
	if s == "" {
		return Period{}, fmt.Errorf("empty date")
	}

	if m := yearOnly.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return Period{Start: start, End: start.AddDate(1, 0, -1)}, nil
	}
	if m := yearMonth.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if mo < 1 || mo > 12 {
			return Period{}, fmt.Errorf("invalid month in %q", s)
		}
		start := time.Date(y, time.Month(mo), 1, 0, 0, 0, 0, time.UTC)
		return Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
	}

	var y, mo, d int
	switch {
	case isoDate.MatchString(s):
		m := isoDate.FindStringSubmatch(s)
		y, _ = strconv.Atoi(m[1])
		mo, _ = strconv.Atoi(m[2])
		d, _ = strconv.Atoi(m[3])
	case dmyDate.MatchString(s):
		m := dmyDate.FindStringSubmatch(s)
		d, _ = strconv.Atoi(m[1])
		mo, _ = strconv.Atoi(m[2])
		y, _ = strconv.Atoi(m[3])
	case dutchDate.MatchString(s):
		m := dutchDate.FindStringSubmatch(s)
		month, ok := months[m[2]]
		if !ok {
			return Period{}, fmt.Errorf("unknown month in %q", s)
		}
		y, _ = strconv.Atoi(m[3])
		start := time.Date(y, month, 1, 0, 0, 0, 0, time.UTC)
		if m[1] == "" {
			return Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
		}
		mo = int(month)
		d, _ = strconv.Atoi(m[1])
	default:
		return Period{}, fmt.Errorf("unrecognized date %q", s)
	}

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(mo) || t.Day() != d {
		return Period{}, fmt.Errorf("invalid date %q", s)
	}
	return Period{Start: t, End: t}, nil
}

// parseInterval turns two free-text cells into an interval. A cell that
// cannot be parsed leaves its bound open.
func parseInterval(since, until string) Interval {
	var iv Interval
	if p, err := ParsePeriod(since); err == nil {
		iv.Since = p.Start
	}
	if p, err := ParsePeriod(until); err == nil {
		iv.Until = p.End
	}
	return iv
}
