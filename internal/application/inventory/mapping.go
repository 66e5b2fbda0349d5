package inventory

import (
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// MissingEquipmentName se muestra cuando el movimiento referencia un equipo que ya no existe.
const MissingEquipmentName = "Equipamento não encontrado"

// ToEquipmentResponse convierte la entidad en la salida HTTP.
func ToEquipmentResponse(e *entity.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Quantity:    e.Quantity,
		Category:    e.Category,
		Location:    e.Location,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEquipmentResponses convierte una lista conservando el orden.
func ToEquipmentResponses(list []*entity.Equipment) []dto.EquipmentResponse {
	out := make([]dto.EquipmentResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ToEquipmentResponse(e))
	}
	return out
}

// ToMovementResponse convierte un movimiento; sin nombre de equipo usa MissingEquipmentName.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	name := m.EquipmentName
	if name == "" {
		name = MissingEquipmentName
	}
	return dto.MovementResponse{
		ID:            m.ID,
		EquipmentID:   m.EquipmentID,
		EquipmentName: name,
		Quantity:      m.Quantity,
		Type:          string(m.Type),
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}
