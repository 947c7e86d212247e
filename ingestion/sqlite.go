package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/grantmatch/core"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// LoadSQLite reads every row of table from the SQLite database at path.
// Columns become fields in declaration order; NULL becomes "".
func LoadSQLite(ctx context.Context, path, table string) ([]core.Record, error) {
	if strings.TrimSpace(table) == "" || strings.ContainsRune(table, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	return readTable(ctx, db, table)
}

func readTable(ctx context.Context, db *sql.DB, table string) ([]core.Record, error) {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i := range columns {
		columns[i] = NormalizeHeader(columns[i])
	}

	var records []core.Record
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		fields := make([]core.Field, len(columns))
		for i, name := range columns {
			fields[i] = core.Field{Name: name, Value: NormalizeValue(cellString(values[i]))}
		}
		record := core.NewRecord(fields...)
		if err := core.ValidateRecord(record); err != nil {
			return nil, fmt.Errorf("%s record %d: %w", table, len(records)+1, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// quoteIdent quotes a SQL identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
