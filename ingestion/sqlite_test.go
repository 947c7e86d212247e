package ingestion

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/grantmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGrantsDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grants.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE "grant programs" (
		"Grant Program Name" TEXT,
		"Administering Agency" TEXT,
		"Award Amount Range" INTEGER,
		"Application Deadline" TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "grant programs" VALUES ('AFG', 'FEMA', 500000, '2099-01-01'), ('SAFER', NULL, NULL, '')`)
	require.NoError(t, err)
	return path
}

func TestLoadSQLite(t *testing.T) {
	path := createGrantsDB(t)
	ctx := context.Background()

	records, err := LoadSQLite(ctx, path, "grant programs")
	require.NoError(t, err)
	require.Len(t, records, 2)

	afg := core.NewGrant(records[0])
	assert.Equal(t, "AFG", afg.ProgramName)
	assert.Equal(t, "FEMA", afg.AdministeringAgency)
	assert.Equal(t, "500000", afg.AwardAmountRange)
	assert.Equal(t, "2099-01-01", afg.ApplicationDeadline)

	safer := core.NewGrant(records[1])
	assert.Equal(t, "SAFER", safer.ProgramName)
	assert.Equal(t, "", safer.AdministeringAgency)
	assert.Equal(t, 4, records[1].Len())
}

func TestLoadSQLite_Errors(t *testing.T) {
	path := createGrantsDB(t)
	ctx := context.Background()

	t.Run("missing table", func(t *testing.T) {
		_, err := LoadSQLite(ctx, path, "nope")
		assert.Error(t, err)
	})

	t.Run("blank table", func(t *testing.T) {
		_, err := LoadSQLite(ctx, path, " ")
		assert.ErrorIs(t, err, ErrInvalidTable)
	})

	t.Run("blank column name", func(t *testing.T) {
		blank := filepath.Join(t.TempDir(), "blank.db")
		db, err := sql.Open("sqlite", blank)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE grants ("Purpose" TEXT, " " TEXT)`)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO grants VALUES ('drones', 'x')`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = LoadSQLite(ctx, blank, "grants")
		assert.ErrorIs(t, err, core.ErrEmptyFieldName)
	})

	t.Run("missing database", func(t *testing.T) {
		_, err := LoadSQLite(ctx, filepath.Join(t.TempDir(), "none.db"), "grants")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"grants"`, quoteIdent("grants"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}
