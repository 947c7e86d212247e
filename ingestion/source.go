package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/grantmatch/core"
)

const sqlitePrefix = "sqlite:"

// Source locates a table of records: a CSV path, or "sqlite:<path>#<table>".
type Source string

// IsSQLite reports whether the source names a SQLite table.
func (s Source) IsSQLite() bool {
	return strings.HasPrefix(string(s), sqlitePrefix)
}

// sqliteParts splits a SQLite locator into database path and table.
func (s Source) sqliteParts() (path, table string, err error) {
	rest := strings.TrimPrefix(string(s), sqlitePrefix)
	i := strings.LastIndexByte(rest, '#')
	if i <= 0 || i == len(rest)-1 {
		return "", "", fmt.Errorf("%w: %q: want sqlite:<path>#<table>", ErrInvalidSource, string(s))
	}
	return rest[:i], rest[i+1:], nil
}

// Load reads every record from the source.
func (s Source) Load(ctx context.Context) ([]core.Record, error) {
	if strings.TrimSpace(string(s)) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSource)
	}
	if s.IsSQLite() {
		path, table, err := s.sqliteParts()
		if err != nil {
			return nil, err
		}
		return LoadSQLite(ctx, path, table)
	}
	return LoadCSV(ctx, string(s))
}
