package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// ReductionInput baja de stock contra un chamado (ticket de soporte).
type ReductionInput struct {
	EquipmentID  string
	Quantity     int
	TicketNumber string
	Observation  string
}

// Description texto del movimiento "out": "Chamado: <ticket>. <observación>" o solo la observación.
func (in ReductionInput) Description() string {
	ticket := strings.TrimSpace(in.TicketNumber)
	obs := strings.TrimSpace(in.Observation)
	if ticket != "" {
		return fmt.Sprintf("Chamado: %s. %s", ticket, obs)
	}
	return obs
}

// StockReductionUseCase registra bajas de stock: movimiento "out" + descuento de la cantidad.
type StockReductionUseCase struct {
	txRunner  TxRunner
	equipRepo repository.EquipmentRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewStockReductionUseCase construye el caso de uso.
func NewStockReductionUseCase(txRunner TxRunner, equipRepo repository.EquipmentRepository, log zerolog.Logger) *StockReductionUseCase {
	return &StockReductionUseCase{txRunner: txRunner, equipRepo: equipRepo, log: log, now: time.Now}
}

// Reduce valida en orden (campos, existencia, disponibilidad), inserta el movimiento "out",
// relee la cantidad justo antes de escribir y guarda current - q. Devuelve la lista de
// equipos recargada.
func (uc *StockReductionUseCase) Reduce(ctx context.Context, in ReductionInput) ([]*entity.Equipment, error) {
	in.EquipmentID = strings.TrimSpace(in.EquipmentID)
	if in.EquipmentID == "" || in.Quantity <= 0 {
		return nil, domain.Validation("Equipamento e quantidade válidos são obrigatórios.")
	}

	equipment, err := uc.equipRepo.GetByID(ctx, in.EquipmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Wrap(domain.ErrNotFound, "Equipamento não encontrado.", err)
		}
		return nil, err
	}
	if in.Quantity > equipment.Quantity {
		return nil, insufficient(equipment.Quantity)
	}

	err = uc.txRunner.Run(ctx, func(equipRepo repository.EquipmentRepository, movRepo repository.StockMovementRepository) error {
		mov := &entity.StockMovement{
			EquipmentID:   equipment.ID,
			EquipmentName: equipment.Name,
			Quantity:      in.Quantity,
			Type:          entity.MovementOut,
			Description:   entity.NullIfEmpty(in.Description()),
			CreatedAt:     uc.now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		// Cantidad fresca: en Postgres la fila queda bloqueada hasta el Commit.
		current, err := equipRepo.GetForUpdate(ctx, equipment.ID)
		if err != nil {
			return err
		}
		if current.Quantity < in.Quantity {
			return insufficient(current.Quantity)
		}
		return equipRepo.UpdateQuantity(ctx, equipment.ID, current.Quantity-in.Quantity)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("equipment_id", in.EquipmentID).Int("quantity", in.Quantity).Msg("error al registrar baja")
		return nil, err
	}
	uc.log.Info().Str("equipment_id", in.EquipmentID).Int("quantity", in.Quantity).Msg("baja registrada")

	return uc.equipRepo.List(ctx)
}

func insufficient(available int) error {
	return domain.NewError(domain.ErrInsufficientStock,
		fmt.Sprintf("Quantidade insuficiente em estoque. Disponível: %d", available))
}
