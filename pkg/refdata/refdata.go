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

// Package refdata defines the reference tables the resolution engine is built from.
//
// Tables are plain rows as delivered by a collaborator (CSV export, database,
// scraper). No parsing beyond trimming happens here; dates and change
// descriptions are interpreted by the history package.
package refdata

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingTable is returned when a required table is absent from a source.
var ErrMissingTable = errors.New("refdata: missing table")

// Municipality is a row of the current municipality roster.
type Municipality struct {
	Name     string
	Province string
}

// Place is a row of the place (woonplaats) to municipality map.
type Place struct {
	Name         string
	Municipality string
	Province     string
}

// Neighbourhood is a row of the neighbourhood (wijk/buurt) to municipality map.
type Neighbourhood struct {
	Name         string
	Municipality string
}

// EncyclopediaRecord is a former municipality as listed in the encyclopedia
// table. All cells are free text.
type EncyclopediaRecord struct {
	Name      string
	Province  string
	Since     string
	Until     string
	Successor string
}

// RegisterRecord is a municipality as listed in the official register.
// Since and Until are ISO dates or empty.
type RegisterRecord struct {
	Code        string
	Name        string
	Province    string
	Since       string
	Until       string
	Description string
}

// Tables bundles every reference table of one dataset vintage.
type Tables struct {
	Municipalities []Municipality
	Places         []Place
	Neighbourhoods []Neighbourhood
	Encyclopedia   []EncyclopediaRecord
	Register       []RegisterRecord
}

// Source loads a complete set of reference tables.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}

// Validate checks the minimum the engine needs: a non-empty roster.
func (t *Tables) Validate() error {
	if t == nil || len(t.Municipalities) == 0 {
		return fmt.Errorf("%w: municipalities", ErrMissingTable)
	}
	return nil
}
