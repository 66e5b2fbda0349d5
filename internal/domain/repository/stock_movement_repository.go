package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del ledger de movimientos.
type StockMovementRepository interface {
	// List devuelve los movimientos más recientes primero, con el nombre del equipo.
	List(ctx context.Context) ([]*entity.StockMovement, error)
	// ListSince movimientos con created_at >= since (para el resumen del dashboard).
	ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error)
	Create(ctx context.Context, m *entity.StockMovement) error
	Delete(ctx context.Context, id string) error
	// DeleteByEquipment elimina todos los movimientos que referencian el equipo.
	DeleteByEquipment(ctx context.Context, equipmentID string) error
}
