package dto

import "time"

// EquipmentRequest body para crear/editar equipos. Los opcionales vacíos se guardan como null.
type EquipmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Quantity    int       `json:"quantity"`
	Category    *string   `json:"category"`
	Location    *string   `json:"location"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
