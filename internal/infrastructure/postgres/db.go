package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// DB pool del Postgres del proyecto. Cada operación corre en una transacción que publica
// los claims del principal (request.jwt.claims) y el rol de base de datos, de modo que
// auth.uid() y las políticas RLS vean la misma identidad que por REST.
type DB struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewDB envuelve el pool.
func NewDB(pool *pgxpool.Pool, log zerolog.Logger) *DB {
	return &DB{pool: pool, log: log}
}

func (db *DB) do(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	claims, role, err := claimsFor(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`SELECT set_config('request.jwt.claims', $1, true), set_config('role', $2, true)`,
		claims, role,
	); err != nil {
		return fmt.Errorf("publicar claims: %w", err)
	}

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// claimsFor arma los claims con la forma del access token; sin principal se usa el rol anon.
func claimsFor(ctx context.Context) (string, string, error) {
	p, ok := entity.PrincipalFrom(ctx)
	if !ok {
		return `{"role":"anon"}`, "anon", nil
	}
	raw, err := json.Marshal(map[string]any{
		"sub":   p.UserID,
		"email": p.Email,
		"role":  "authenticated",
		"user_metadata": map[string]any{
			"role":      string(p.Role),
			"full_name": p.FullName,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("serializar claims: %w", err)
	}
	return string(raw), "authenticated", nil
}
