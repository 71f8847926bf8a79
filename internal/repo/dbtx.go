package repo

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql that repositories use. Both *sql.DB and
// *sql.Tx satisfy it, so the same repo code runs standalone for reads and
// inside a transaction when the service layer needs an atomic unit.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
