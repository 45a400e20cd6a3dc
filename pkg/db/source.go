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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

// Querier runs a query. *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource loads the reference tables from Postgres.
type PostgresSource struct {
	db Querier
}

// NewPostgresSource returns a refdata.Source reading through db.
func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// Load reads every table. Optional tables that do not exist load as empty.
func (s *PostgresSource) Load(ctx context.Context) (*refdata.Tables, error) {
	return refdata.Assemble(func(file string, required bool) ([]map[string]string, error) {
		rows, err := s.read(ctx, file)
		if err != nil {
			if isUndefinedTable(err) {
				if required {
					return nil, fmt.Errorf("%w: %s", refdata.ErrMissingTable, TableNames[file])
				}
				return nil, nil
			}
			return nil, fmt.Errorf("error reading %s: %w", TableNames[file], err)
		}
		return rows, nil
	})
}

func (s *PostgresSource) read(ctx context.Context, file string) ([]map[string]string, error) {
	cols := refdata.Columns[file]
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	sql := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), pgx.Identifier{TableNames[file]}.Sanitize())

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRow(cols))
}

// scanRow reads one row of text columns. NULL cells are left out of the map.
func scanRow(cols []string) pgx.RowToFunc[map[string]string] {
	return func(row pgx.CollectableRow) (map[string]string, error) {
		vals := make([]*string, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}
		out := make(map[string]string, len(cols))
		for i, c := range cols {
			if vals[i] != nil {
				out[c] = strings.TrimSpace(*vals[i])
			}
		}
		return out, nil
	}
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
