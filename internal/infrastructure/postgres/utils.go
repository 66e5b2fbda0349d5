package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

// mapErr traduce pgx.ErrNoRows a domain.ErrNotFound. El resto conserva el texto del servidor
// ("duplicate key", "permission denied") para que domain.ContextError lo clasifique según la pantalla.
func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected exige al menos una fila afectada; con RLS una fila invisible se reporta como inexistente.
func affected(tag pgconn.CommandTag, err error, op string) error {
	if err != nil {
		return mapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
