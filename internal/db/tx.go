package db

import (
	"context"
	"database/sql"
)

// Transactor runs fn inside a single database transaction. The transaction
// commits only when fn returns nil; any error or panic rolls it back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx DBTX) error) error
}

type transactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(tx DBTX) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// no-op once committed
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}
