package entity

import "time"

// MovementType tipo de movimiento del ledger de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementIn  MovementType = "in"  // entrada
	MovementOut MovementType = "out" // salida / baja
)

// ParseMovementType valida el tipo recibido de un formulario.
func ParseMovementType(s string) (MovementType, bool) {
	switch MovementType(s) {
	case MovementIn, MovementOut:
		return MovementType(s), true
	}
	return "", false
}

// StockMovement registro append-only de un evento de stock sobre un equipo.
// Solo se crea o se elimina; eliminarlo no revierte ningún cambio de cantidad.
type StockMovement struct {
	ID            string
	EquipmentID   string
	EquipmentName string // del join con equipment; vacío si el equipo ya no existe
	Quantity      int    // siempre > 0, el signo lo da Type
	Type          MovementType
	Description   *string
	CreatedAt     time.Time
}
