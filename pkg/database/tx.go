package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cockroachdb/cockroach-go/v2/crdb"
)

// TxRetries bounds how often a transaction is rerun after a serialization failure.
const TxRetries = 5

// WithTx runs fn inside a transaction. On a serialization failure (40001) the
// whole transaction is rolled back and started again with a fresh snapshot.
func (p *Postgres) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(*sql.Tx) error) error {
	return crdb.ExecuteCtx(crdb.WithMaxRetries(ctx, TxRetries), func(ctx context.Context, _ ...interface{}) error {
		tx, err := p.DB.BeginTx(ctx, opts)
		if err != nil {
			return err
		}

		if err := fn(tx); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				return errors.Join(err, rbErr)
			}
			return err
		}
		return tx.Commit()
	})
}
