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
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

// TableNames maps each reference table file to its Postgres table.
var TableNames = map[string]string{
	refdata.MunicipalitiesFile: "nlm_municipalities",
	refdata.PlacesFile:         "nlm_places",
	refdata.NeighbourhoodsFile: "nlm_neighbourhoods",
	refdata.EncyclopediaFile:   "nlm_encyclopedia",
	refdata.RegisterFile:       "nlm_register",
}

// tableOrder is the import and load order. The roster comes first.
var tableOrder = []string{
	refdata.MunicipalitiesFile,
	refdata.PlacesFile,
	refdata.NeighbourhoodsFile,
	refdata.EncyclopediaFile,
	refdata.RegisterFile,
}

// Execer runs a statement. *pgxpool.Pool, *pgx.Conn and pgx.Tx satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SchemaStatements returns the DDL for every reference table. All columns are
// text; parsing happens when the engine is built.
func SchemaStatements() []string {
	var stmts []string
	for _, file := range tableOrder {
		cols := make([]string, 0, len(refdata.Columns[file]))
		for _, c := range refdata.Columns[file] {
			cols = append(cols, pgx.Identifier{c}.Sanitize()+" TEXT")
		}
		table := pgx.Identifier{TableNames[file]}.Sanitize()
		stmts = append(stmts, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", ")))
	}
	return stmts
}

// EnsureSchema creates the reference tables that do not exist yet.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range SchemaStatements() {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("unable to create schema: %w", err)
		}
	}
	return nil
}
