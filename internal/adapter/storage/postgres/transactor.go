package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor hands out database transactions for multi-step money
// movements. Services begin a transaction, take their row locks through it,
// and commit or roll back the debit, credit, and ledger append as one unit.
type Transactor struct {
	pool Pool
}

// NewTransactor wraps the shared connection pool.
func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin opens a transaction on the pool.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
