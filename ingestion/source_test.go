package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_SQLiteParts(t *testing.T) {
	tests := []struct {
		source    Source
		wantPath  string
		wantTable string
		wantErr   bool
	}{
		{source: "sqlite:data/grants.db#grants", wantPath: "data/grants.db", wantTable: "grants"},
		{source: "sqlite:/tmp/a#b.db#programs", wantPath: "/tmp/a#b.db", wantTable: "programs"},
		{source: "sqlite:data/grants.db", wantErr: true},
		{source: "sqlite:#grants", wantErr: true},
		{source: "sqlite:data/grants.db#", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			require.True(t, tt.source.IsSQLite())
			path, table, err := tt.source.sqliteParts()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantTable, table)
		})
	}
}

func TestSource_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "buyers.csv")
		require.NoError(t, os.WriteFile(path, []byte("Agency Name\nSpringfield FD\n"), 0o600))

		records, err := Source(path).Load(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := createGrantsDB(t)
		records, err := Source("sqlite:" + path + "#grant programs").Load(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Source("").Load(ctx)
		assert.ErrorIs(t, err, ErrInvalidSource)
	})
}
