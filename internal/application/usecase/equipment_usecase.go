package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
	"github.com/jhoicas/Inventario-equipos/pkg/textfilter"
)

// EquipmentUseCase aplica reglas de negocio para equipos.
type EquipmentUseCase struct {
	repo     repository.EquipmentRepository
	profiles repository.ProfileRepository
	txRunner inventory.TxRunner
	log      zerolog.Logger
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(
	repo repository.EquipmentRepository,
	profiles repository.ProfileRepository,
	txRunner inventory.TxRunner,
	log zerolog.Logger,
) *EquipmentUseCase {
	return &EquipmentUseCase{repo: repo, profiles: profiles, txRunner: txRunner, log: log}
}

// List devuelve los equipos ordenados por nombre, filtrados por nombre, descripción,
// categoría, ubicación o estado.
func (uc *EquipmentUseCase) List(ctx context.Context, search string) ([]dto.EquipmentResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	list = textfilter.Filter(list, search, func(e *entity.Equipment) []string {
		return []string{e.Name, entity.Deref(e.Description), entity.Deref(e.Category), entity.Deref(e.Location), entity.Deref(e.Status)}
	})
	return inventory.ToEquipmentResponses(list), nil
}

// Get obtiene un equipo por ID.
func (uc *EquipmentUseCase) Get(ctx context.Context, id string) (*dto.EquipmentResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Equipamento não encontrado.")
	}
	resp := inventory.ToEquipmentResponse(e)
	return &resp, nil
}

// Create registra un equipo nuevo.
func (uc *EquipmentUseCase) Create(ctx context.Context, in dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	e, err := equipmentFromRequest(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := inventory.ToEquipmentResponse(e)
	return &resp, nil
}

// Update reemplaza los campos editables del equipo, cantidad incluida.
func (uc *EquipmentUseCase) Update(ctx context.Context, id string, in dto.EquipmentRequest) (*dto.EquipmentResponse, error) {
	e, err := equipmentFromRequest(in)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, notFound(err, "Equipamento não encontrado.")
	}
	resp := inventory.ToEquipmentResponse(e)
	return &resp, nil
}

// Delete borra el equipo y sus movimientos. El rol del llamador se vuelve a consultar en
// profiles justo antes; los movimientos se eliminan primero y el equipo después.
func (uc *EquipmentUseCase) Delete(ctx context.Context, caller entity.Principal, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Validation("Equipamento não selecionado.")
	}
	profile, err := uc.profiles.GetByID(ctx, caller.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if profile == nil || !profile.Role.IsAdmin() {
		return domain.NewError(domain.ErrForbidden, "Você não tem permissão para excluir equipamentos.")
	}
	err = uc.txRunner.Run(ctx, func(equipRepo repository.EquipmentRepository, movRepo repository.StockMovementRepository) error {
		if err := movRepo.DeleteByEquipment(ctx, id); err != nil {
			return err
		}
		return equipRepo.Delete(ctx, id)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("equipment_id", id).Str("user_id", caller.UserID).Msg("error al eliminar equipo")
		return err
	}
	uc.log.Info().Str("equipment_id", id).Str("user_id", caller.UserID).Msg("equipo eliminado")
	return nil
}

func equipmentFromRequest(in dto.EquipmentRequest) (*entity.Equipment, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("O nome do equipamento é obrigatório.")
	}
	if in.Quantity < 0 {
		return nil, domain.Validation("A quantidade não pode ser negativa.")
	}
	return &entity.Equipment{
		Name:        name,
		Description: entity.NullIfEmpty(strings.TrimSpace(in.Description)),
		Quantity:    in.Quantity,
		Category:    entity.NullIfEmpty(strings.TrimSpace(in.Category)),
		Location:    entity.NullIfEmpty(strings.TrimSpace(in.Location)),
		Status:      entity.NullIfEmpty(strings.TrimSpace(in.Status)),
	}, nil
}

// notFound reemplaza ErrNotFound por un error con mensaje para el usuario.
func notFound(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Wrap(domain.ErrNotFound, message, err)
	}
	return err
}
