package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	EquipmentID string `json:"equipment_id"`
	Quantity    int    `json:"quantity"`
	Type        string `json:"type"` // in | out
	Description string `json:"description"`
}

// MovementResponse salida de un movimiento con el nombre del equipo.
type MovementResponse struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	Quantity      int       `json:"quantity"`
	Type          string    `json:"type"`
	Description   *string   `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockReductionRequest body para POST /api/reductions (baja de stock contra un chamado).
type StockReductionRequest struct {
	EquipmentID  string `json:"equipment_id"`
	Quantity     int    `json:"quantity"`
	TicketNumber string `json:"ticket_number"`
	Observation  string `json:"observation"`
}

// StockReductionResponse lista de equipos recargada tras la baja.
type StockReductionResponse struct {
	Message   string              `json:"message"`
	Equipment []EquipmentResponse `json:"equipment"`
}
