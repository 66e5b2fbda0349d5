package supabase

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// TxRunner por REST no hay transacciones: fn corre sobre los repositorios normales
// y lo que ya se escribió queda si un paso posterior falla.
type TxRunner struct {
	equipment *EquipmentRepo
	movements *MovementRepo
}

// NewTxRunner construye el runner secuencial.
func NewTxRunner(c *Client) *TxRunner {
	return &TxRunner{equipment: NewEquipmentRepo(c), movements: NewMovementRepo(c)}
}

func (t *TxRunner) Run(ctx context.Context, fn func(
	equipRepo repository.EquipmentRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(t.equipment, t.movements)
}
