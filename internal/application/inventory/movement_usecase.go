package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
	"github.com/jhoicas/Inventario-equipos/pkg/textfilter"
)

// MovementUseCase ledger de movimientos de stock.
// Registrar o borrar un movimiento nunca modifica Equipment.Quantity: la cantidad del equipo
// se mantiene a mano (edición) y solo la baja de stock la descuenta.
type MovementUseCase struct {
	equipRepo repository.EquipmentRepository
	movRepo   repository.StockMovementRepository
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(equipRepo repository.EquipmentRepository, movRepo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{equipRepo: equipRepo, movRepo: movRepo, now: time.Now}
}

// List devuelve los movimientos (más recientes primero) filtrados por nombre de equipo, tipo o descripción.
func (uc *MovementUseCase) List(ctx context.Context, search string) ([]dto.MovementResponse, error) {
	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return textfilter.Filter(out, search, func(m dto.MovementResponse) []string {
		desc := ""
		if m.Description != nil {
			desc = *m.Description
		}
		return []string{m.EquipmentName, m.Type, desc}
	}), nil
}

// Find busca un movimiento del ledger por id (con el nombre del equipo).
func (uc *MovementUseCase) Find(ctx context.Context, id string) (*dto.MovementResponse, error) {
	list, err := uc.movRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		if m.ID == id {
			resp := ToMovementResponse(m)
			return &resp, nil
		}
	}
	return nil, domain.NewError(domain.ErrNotFound, "Movimentação não encontrada.")
}

// Register valida y agrega un movimiento al ledger.
func (uc *MovementUseCase) Register(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	equipmentID := strings.TrimSpace(in.EquipmentID)
	if equipmentID == "" || in.Quantity <= 0 {
		return nil, domain.Validation("Equipamento e quantidade válidos são obrigatórios.")
	}
	typ, ok := entity.ParseMovementType(strings.TrimSpace(in.Type))
	if !ok {
		return nil, domain.Validation("Tipo de movimentação inválido. Use \"in\" ou \"out\".")
	}
	equipment, err := uc.equipRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Wrap(domain.ErrNotFound, "Equipamento não encontrado.", err)
		}
		return nil, err
	}
	m := &entity.StockMovement{
		EquipmentID:   equipment.ID,
		EquipmentName: equipment.Name,
		Quantity:      in.Quantity,
		Type:          typ,
		Description:   entity.NullIfEmpty(strings.TrimSpace(in.Description)),
		CreatedAt:     uc.now(),
	}
	if err := uc.movRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := ToMovementResponse(m)
	return &resp, nil
}

// Delete elimina solo la fila del ledger.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("Movimentação não selecionada.")
	}
	return uc.movRepo.Delete(ctx, id)
}
