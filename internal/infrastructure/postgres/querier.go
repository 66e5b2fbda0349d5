package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier subconjunto común de *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scope decide sobre qué conexión corre una operación:
// una transacción propia con los claims del llamador, o la transacción de un TxRunner.
type scope interface {
	do(ctx context.Context, fn func(q Querier) error) error
}

// txScope reutiliza la transacción abierta por el TxRunner.
type txScope struct{ q Querier }

func (s txScope) do(ctx context.Context, fn func(q Querier) error) error { return fn(s.q) }
