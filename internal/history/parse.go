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
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

// ChangeEvent is one statement of a register description.
type ChangeEvent interface {
	EventDate() time.Time
}

// Created marks the start of a municipality.
type Created struct {
	Date time.Time
}

// Dissolved marks the end of a municipality; its area went to Destinations.
type Dissolved struct {
	Date         time.Time
	Destinations []Destination
}

// Renamed marks a change of name, continued under Successor.
type Renamed struct {
	Date      time.Time
	Successor string
}

// Destination is a receiving municipality with the population it took over.
// Population is zero when the description does not state it.
type Destination struct {
	Code       string
	Population float64
}

func (e Created) EventDate() time.Time   { return e.Date }
func (e Dissolved) EventDate() time.Time { return e.Date }
func (e Renamed) EventDate() time.Time   { return e.Date }

// Successor picks the destination that took the largest share of the
// population and returns that share as a percentage. Without any population
// figures every destination counts equally and the first one is picked.
func (e Dissolved) Successor() (string, float64, bool) {
	n := len(e.Destinations)
	if n == 0 {
		return "", 0, false
	}
	pops := make([]float64, n)
	for i, d := range e.Destinations {
		pops[i] = d.Population
	}
	total := floats.Sum(pops)
	if total <= 0 {
		return e.Destinations[0].Code, 100 / float64(n), true
	}
	i := floats.MaxIdx(pops)
	return e.Destinations[i].Code, 100 * pops[i] / total, true
}

var (
	keyword     = regexp.MustCompile(`(?i)\b(ontstaan|ingesteld|gevormd|opgeheven|naamswijziging|hernoemd)\b`)
	eventDate   = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`)
	destination = regexp.MustCompile(`(?i)\b(GM\d{4})\b(?:\s*\(\s*([\d.]+)\s*inw\.?\s*\))?`)
)

// ParseDescription extracts the change events from a register description.
// Each keyword opens a clause that runs up to the next keyword.
func ParseDescription(text string) []ChangeEvent {
	locs := keyword.FindAllStringSubmatchIndex(text, -1)
	var events []ChangeEvent
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		clause := text[loc[1]:end]
		date := clauseDate(clause)

		switch strings.ToLower(text[loc[2]:loc[3]]) {
		case "ontstaan", "ingesteld", "gevormd":
			events = append(events, Created{Date: date})
		case "opgeheven":
			d := Dissolved{Date: date}
			for _, m := range destination.FindAllStringSubmatch(clause, -1) {
				d.Destinations = append(d.Destinations, Destination{
					Code:       strings.ToUpper(m[1]),
					Population: parsePopulation(m[2]),
				})
			}
			events = append(events, d)
		case "naamswijziging", "hernoemd":
			r := Renamed{Date: date}
			if m := destination.FindStringSubmatch(clause); m != nil {
				r.Successor = strings.ToUpper(m[1])
			}
			events = append(events, r)
		}
	}
	return events
}

func clauseDate(clause string) time.Time {
	m := eventDate.FindStringSubmatch(clause)
	if m == nil {
		return time.Time{}
	}
	d, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	y, _ := strconv.Atoi(m[3])
	return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
}

// parsePopulation reads "12.500" as 12500.
func parsePopulation(s string) float64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ".", ""), 64)
	if err != nil {
		return 0
	}
	return n
}
