// Package mysql extracts tables straight from a running MySQL database,
// producing the same per-table output shape as a dump parse.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/tobiasmeyer/sqlextract/pkg/types"
)

type Extractor struct {
	db      *sql.DB
	schema  string
	timeout time.Duration
	now     func() time.Time
}

func NewExtractor(dsn string, schema string) (*Extractor, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Extractor{
		db:      db,
		schema:  schema,
		timeout: 30 * time.Second,
		now:     time.Now,
	}, nil
}

func (e *Extractor) Close() error {
	return e.db.Close()
}

func (e *Extractor) TableNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME
	`, e.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Columns returns the table's column names in declared order.
func (e *Extractor) Columns(ctx context.Context, table string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, `
		SELECT COLUMN_NAME
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, e.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

// FetchTable reads every row of one table.
func (e *Extractor) FetchTable(ctx context.Context, table string) (types.TableExtraction, error) {
	cols, err := e.Columns(ctx, table)
	if err != nil {
		return types.TableExtraction{}, fmt.Errorf("fetch columns for %s: %w", table, err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	query := fmt.Sprintf("SELECT * FROM `%s`", table)
	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return types.TableExtraction{}, fmt.Errorf("fetch rows for %s: %w", table, err)
	}
	defer rows.Close()

	data := []types.Row{}
	for rows.Next() {
		scanned := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range scanned {
			ptrs[i] = &scanned[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return types.TableExtraction{}, fmt.Errorf("scan row from %s: %w", table, err)
		}

		row := types.NewRow(len(cols))
		for i, col := range cols {
			row.Set(col, NativeValue(scanned[i]))
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return types.TableExtraction{}, err
	}

	return types.TableExtraction{
		TableName:   table,
		Columns:     cols,
		RowCount:    len(data),
		ExtractedAt: e.now().Format(time.RFC3339),
		Data:        data,
	}, nil
}

// ExtractAll fetches every base table in the schema, or only the named
// ones when tables is non-empty.
func (e *Extractor) ExtractAll(ctx context.Context, tables []string) ([]types.TableExtraction, error) {
	names := tables
	if len(names) == 0 {
		var err error
		names, err = e.TableNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
	}

	var out []types.TableExtraction
	for _, name := range names {
		t, err := e.FetchTable(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// NativeValue maps a driver-scanned value onto the JSON scalar set. The
// MySQL driver hands back text and blob columns as []byte, and time.Time
// when parseTime is on.
func NativeValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return v
	}
}
