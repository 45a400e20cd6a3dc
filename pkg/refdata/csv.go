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

package refdata

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// File names of the tables inside a data directory.
const (
	MunicipalitiesFile = "municipalities.csv"
	PlacesFile         = "places.csv"
	NeighbourhoodsFile = "neighbourhoods.csv"
	EncyclopediaFile   = "encyclopedia.csv"
	RegisterFile       = "register.csv"
)

// Columns lists the header of every table, in file order.
var Columns = map[string][]string{
	MunicipalitiesFile: {"name", "province"},
	PlacesFile:         {"name", "municipality", "province"},
	NeighbourhoodsFile: {"name", "municipality"},
	EncyclopediaFile:   {"name", "province", "since", "until", "successor"},
	RegisterFile:       {"code", "name", "province", "since", "until", "description"},
}

// DirSource reads the tables from CSV files in a directory. Only the
// municipality roster is required; other tables may be missing.
type DirSource struct {
	Dir string
}

// NewDirSource returns a Source reading from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Load reads all tables from the directory.
func (s *DirSource) Load(ctx context.Context) (*Tables, error) {
	t, err := Assemble(s.read)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// RowReader returns the rows of one table, keyed by lower-cased column name.
// A missing optional table is reported as no rows.
type RowReader func(table string, required bool) ([]map[string]string, error)

// Assemble builds Tables from the rows read per table file name.
func Assemble(read RowReader) (*Tables, error) {
	t := &Tables{}

	rows, err := read(MunicipalitiesFile, true)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		t.Municipalities = append(t.Municipalities, Municipality{Name: r["name"], Province: r["province"]})
	}

	if rows, err = read(PlacesFile, false); err != nil {
		return nil, err
	}
	for _, r := range rows {
		t.Places = append(t.Places, Place{Name: r["name"], Municipality: r["municipality"], Province: r["province"]})
	}

	if rows, err = read(NeighbourhoodsFile, false); err != nil {
		return nil, err
	}
	for _, r := range rows {
		t.Neighbourhoods = append(t.Neighbourhoods, Neighbourhood{Name: r["name"], Municipality: r["municipality"]})
	}

	if rows, err = read(EncyclopediaFile, false); err != nil {
		return nil, err
	}
	for _, r := range rows {
		t.Encyclopedia = append(t.Encyclopedia, EncyclopediaRecord{
			Name:      r["name"],
			Province:  r["province"],
			Since:     r["since"],
			Until:     r["until"],
			Successor: r["successor"],
		})
	}

	if rows, err = read(RegisterFile, false); err != nil {
		return nil, err
	}
	for _, r := range rows {
		t.Register = append(t.Register, RegisterRecord{
			Code:        r["code"],
			Name:        r["name"],
			Province:    r["province"],
			Since:       r["since"],
			Until:       r["until"],
			Description: r["description"],
		})
	}

	return t, t.Validate()
}

func (s *DirSource) read(name string, required bool) ([]map[string]string, error) {
	path := filepath.Join(s.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingTable, path)
		}
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV reads a CSV stream with a header row into one map per row, keyed by
// the lower-cased header. Cells are trimmed.
func ReadCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
