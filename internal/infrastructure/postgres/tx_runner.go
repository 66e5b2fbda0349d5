package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los claims del llamador.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run abre la transacción, ejecuta fn con repos atados a ella y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.db.do(ctx, func(q Querier) error {
		s := txScope{q: q}
		return fn(&EquipmentRepo{s: s}, &MovementRepo{s: s})
	})
}
