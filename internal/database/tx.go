// =============================================================================
// FILE: internal/database/tx.go
// PURPOSE: Run a whole service operation inside one database transaction
// =============================================================================
//
// The transaction travels in the context. Repositories call Querier(ctx, pool)
// and transparently run on the open pgx.Tx when there is one, or on the pool
// otherwise. That keeps repository signatures free of *pgx.Tx parameters.
// =============================================================================

package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Transactor runs fn inside a transaction. Any error returned by fn
// (or a panic) rolls the transaction back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// PgxTransactor implements Transactor on a pgx pool
type PgxTransactor struct {
	pool *pgxpool.Pool
}

// NewTransactor creates a PgxTransactor
func NewTransactor(pool *pgxpool.Pool) *PgxTransactor {
	return &PgxTransactor{pool: pool}
}

// WithinTransaction begins a transaction, or joins the one already in ctx
func (t *PgxTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	// BeginFunc commits when fn returns nil and rolls back otherwise
	return pgx.BeginFunc(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Querier returns the transaction stored in ctx, or fallback when there is none
func Querier(ctx context.Context, fallback DBTX) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}
