package repository

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// EquipmentRepository define el puerto de persistencia para Equipment (DIP).
// Las implementaciones autentican con el principal del contexto.
type EquipmentRepository interface {
	// List devuelve todos los equipos ordenados por nombre ascendente.
	List(ctx context.Context) ([]*entity.Equipment, error)
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	// GetForUpdate relee el equipo justo antes de escribir su cantidad.
	// En Postgres bloquea la fila (SELECT ... FOR UPDATE); por REST es una lectura fresca.
	GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error)
	Create(ctx context.Context, e *entity.Equipment) error
	Update(ctx context.Context, e *entity.Equipment) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
}
