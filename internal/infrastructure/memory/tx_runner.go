package memory

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// TxRunner ejecuta fn sobre los repositorios del store, sin aislamiento ni rollback.
type TxRunner struct{ s *Store }

func (t *TxRunner) Run(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(t.s.Equipment(), t.s.Movements())
}
