package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a la misma unidad de trabajo.
// Con Postgres es una transacción real (Commit/Rollback); sobre REST las llamadas
// se aplican en orden y lo ya escrito queda si un paso posterior falla.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		equipRepo repository.EquipmentRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
