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

package db

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/TFMV/nlmunicipality/pkg/refdata"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

// CsvSource implements the pgx.CopyFromSource interface. Records are
// reordered to the table's columns; columns the file lacks are copied as NULL.
type CsvSource struct {
	reader *csv.Reader
	order  []int
	values []any
	err    error
}

// NewCsvSource reads the header of r and maps it onto columns. The header
// must contain a name column.
func NewCsvSource(r io.Reader, columns []string) (*CsvSource, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	s := &CsvSource{reader: reader, order: make([]int, len(columns)), values: make([]any, len(columns))}
	for i, c := range columns {
		idx, ok := index[c]
		if !ok {
			idx = -1
		}
		s.order[i] = idx
	}
	if _, ok := index["name"]; !ok {
		return nil, fmt.Errorf("CSV header %v has no name column", headers)
	}
	return s, nil
}

func (s *CsvSource) Next() bool {
	record, err := s.reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return false
	}
	for i, idx := range s.order {
		if idx >= 0 && idx < len(record) {
			s.values[i] = strings.TrimSpace(record[idx])
		} else {
			s.values[i] = nil
		}
	}
	return true
}

func (s *CsvSource) Values() ([]interface{}, error) {
	return s.values, nil
}

func (s *CsvSource) Err() error {
	return s.err
}

// Beginner starts a transaction. *pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ImportDir replaces the contents of every reference table with the CSV file
// of the same name in dir, in one transaction. Optional files that are
// missing leave their table untouched. It returns the rows copied per table.
func ImportDir(ctx context.Context, pool Beginner, dir string, log *utils.Logger) (map[string]int64, error) {
	if log == nil {
		log = utils.Discard()
	}
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := EnsureSchema(ctx, tx); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(tableOrder))
	for _, file := range tableOrder {
		path := filepath.Join(dir, file)
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && file != refdata.MunicipalitiesFile {
				log.Debug("skipping missing table file", "path", path)
				continue
			}
			return nil, fmt.Errorf("error opening file: %w", err)
		}
		n, err := copyTable(ctx, tx, file, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("error copying %s: %w", path, err)
		}
		counts[TableNames[file]] = n
		log.Info("copied table", "table", TableNames[file], "rows", n)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("unable to commit import: %w", err)
	}
	log.Info("import finished", "dir", dir, "duration", time.Since(start).String())
	return counts, nil
}

func copyTable(ctx context.Context, tx pgx.Tx, file string, r io.Reader) (int64, error) {
	cols := refdata.Columns[file]
	src, err := NewCsvSource(r, cols)
	if err != nil {
		return 0, err
	}
	table := pgx.Identifier{TableNames[file]}
	if _, err := tx.Exec(ctx, "TRUNCATE "+table.Sanitize()); err != nil {
		return 0, err
	}
	return tx.CopyFrom(ctx, table, cols, src)
}
