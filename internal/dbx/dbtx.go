// Package dbx holds the database plumbing shared by the repositories: the
// DBTX handle that lets the same query code run against *sql.DB or *sql.Tx,
// and the transaction wrapper the import pipeline builds its purge and
// insert phases on.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the common query surface of *sql.DB and *sql.Tx. Repositories
// accept it instead of a concrete handle, so the caller decides whether a
// call runs standalone or joins an open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db: commit when fn returns nil,
// rollback when it returns an error or panics. Panics propagate after the
// rollback.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return influencers.NewPostgresRepository(tx).PurgeAll(ctx)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	// no-op once the transaction has committed
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	return tx.Commit()
}
