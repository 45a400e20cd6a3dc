package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/nlmunicipality/pkg/refdata"
)

func TestCsvSource(t *testing.T) {
	in := "province,Name,extra\nNoord-Holland, Zaandam ,x\nUtrecht\n"
	src, err := NewCsvSource(strings.NewReader(in), refdata.Columns[refdata.PlacesFile])
	require.NoError(t, err)

	require.True(t, src.Next())
	values, err := src.Values()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Zaandam", nil, "Noord-Holland"}, values)

	require.True(t, src.Next())
	values, _ = src.Values()
	assert.Equal(t, []interface{}{nil, nil, "Utrecht"}, values, "short records copy NULL")

	assert.False(t, src.Next())
	assert.NoError(t, src.Err())
}

func TestCsvSourceErrors(t *testing.T) {
	_, err := NewCsvSource(strings.NewReader("code,province\nGM0001,Utrecht\n"), refdata.Columns[refdata.RegisterFile])
	assert.ErrorContains(t, err, "no name column")

	_, err = NewCsvSource(strings.NewReader(""), refdata.Columns[refdata.RegisterFile])
	assert.Error(t, err)

	src, err := NewCsvSource(strings.NewReader("name\n\"unterminated\n"), refdata.Columns[refdata.MunicipalitiesFile])
	require.NoError(t, err)
	assert.False(t, src.Next())
	assert.Error(t, src.Err())
}

type recordingExecer struct {
	stmts []string
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	return pgconn.CommandTag{}, nil
}

func TestEnsureSchema(t *testing.T) {
	rec := &recordingExecer{}
	require.NoError(t, EnsureSchema(context.Background(), rec))
	require.Len(t, rec.stmts, 5)
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "nlm_municipalities" ("name" TEXT, "province" TEXT)`, rec.stmts[0])
	assert.Contains(t, rec.stmts[4], `"description" TEXT`)
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUndefinedTable(os.ErrNotExist))
}

// TestImportAndLoad needs a scratch database; set NLM_TEST_DATABASE_URL to run it.
func TestImportAndLoad(t *testing.T) {
	url := os.Getenv("NLM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("NLM_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewConnection(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	counts, err := ImportDir(ctx, pool, "../refdata/testdata", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(33), counts["nlm_municipalities"])

	tables, err := NewPostgresSource(pool).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, tables.Municipalities, 33)
	assert.Len(t, tables.Register, 20)
}
