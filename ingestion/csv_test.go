package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/grantmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("bom and trimmed headers", func(t *testing.T) {
		input := "\ufeff Agency Name ,Agency Type,  Product Name\n" +
			"Springfield FD,Fire Department,Drone/UAV\n"

		records, err := ReadCSV(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)

		buyer := core.NewBuyer(records[0])
		assert.Equal(t, "Springfield FD", buyer.AgencyName)
		assert.Equal(t, "Fire Department", buyer.AgencyType)
		assert.Equal(t, "Drone/UAV", buyer.ProductName)
		assert.Equal(t, "Springfield FD Fire Department Drone/UAV", records[0].Text())
	})

	t.Run("short rows and empty cells", func(t *testing.T) {
		input := "a,b,c\n1,,3\n4\n"

		records, err := ReadCSV(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, []core.Field{{Name: "a", Value: "1"}, {Name: "b"}, {Name: "c", Value: "3"}}, records[0].Fields)
		assert.Equal(t, []core.Field{{Name: "a", Value: "4"}, {Name: "b"}, {Name: "c"}}, records[1].Fields)
		assert.Equal(t, 3, records[1].Len())
	})

	t.Run("extra cells ignored", func(t *testing.T) {
		records, err := ReadCSV(ctx, strings.NewReader("a\n1,2,3\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []core.Field{{Name: "a", Value: "1"}}, records[0].Fields)
	})

	t.Run("nfkc values", func(t *testing.T) {
		records, err := ReadCSV(ctx, strings.NewReader("Product Name\nＤｒｏｎｅ\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Drone", records[0].Value(core.FieldProductName))
	})

	t.Run("quoted commas", func(t *testing.T) {
		records, err := ReadCSV(ctx, strings.NewReader("Purpose\n\"drones, PPE\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "drones, PPE", records[0].Value(core.FieldPurpose))
	})

	t.Run("header only", func(t *testing.T) {
		records, err := ReadCSV(ctx, strings.NewReader("a,b\n"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("blank header name", func(t *testing.T) {
		_, err := ReadCSV(ctx, strings.NewReader("a, ,c\n1,2,3\n"))
		assert.ErrorIs(t, err, core.ErrInvalidRecord)
		assert.ErrorIs(t, err, core.ErrEmptyFieldName)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV(ctx, strings.NewReader(""))
		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ReadCSV(cctx, strings.NewReader("a\n1\n"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grants.csv")
	require.NoError(t, os.WriteFile(path, []byte("Grant Program Name,Administering Agency\nAFG,FEMA\n"), 0o600))

	records, err := LoadCSV(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, core.GrantKey{ProgramName: "AFG", Agency: "FEMA"}, core.NewGrant(records[0]).Key())

	_, err = LoadCSV(context.Background(), filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Agency Name", NormalizeHeader("  Agency   Name\t"))
	assert.Equal(t, "A  B", NormalizeValue(" A  B "))
	assert.Equal(t, "1", NormalizeValue("①"))
}
