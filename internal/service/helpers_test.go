package service

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// fakeTx satisfies pgx.Tx for service tests. Only Commit and Rollback are
// implemented; repository calls inside the transaction are mocked and never
// touch the tx itself.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}
