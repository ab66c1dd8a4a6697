package appointment

import (
	"context"
	"database/sql"
)

// DBExecutor минимальный интерфейс над *sql.DB, нужный репозиторию
type DBExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
