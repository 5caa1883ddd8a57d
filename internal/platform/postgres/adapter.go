package postgres

import (
	"context"
	"fmt"

	"github.com/phrazzld/clinic-api/internal/store"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Adapter runs statement templates with positional parameters. Arguments are
// always sent as bound parameters; callers never splice values into stmt.
type Adapter struct {
	db store.DBTX
}

// NewAdapter wraps a pool or transaction.
func NewAdapter(db store.DBTX) *Adapter {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	return &Adapter{db: db}
}

// Query runs stmt and returns every row. An empty result is a non-nil, empty slice.
func (a *Adapter) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := a.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, MapError(err)
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return result, nil
}

// Exec runs a mutating stmt and returns the number of affected rows.
func (a *Adapter) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	result, err := a.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, MapError(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// Ping runs a trivial statement through the pool, as /db/health does.
func (a *Adapter) Ping(ctx context.Context) error {
	rows, err := a.Query(ctx, "SELECT 1 AS ok")
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("health query returned %d rows", len(rows))
	}

	switch v := rows[0]["ok"].(type) {
	case int64:
		if v == 1 {
			return nil
		}
	case int32:
		if v == 1 {
			return nil
		}
	}
	return fmt.Errorf("health query returned unexpected value %v", rows[0]["ok"])
}
