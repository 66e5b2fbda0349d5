package entity

import "time"

// Equipment representa un equipo rastreable del inventario.
// Quantity es el stock actual autoritativo: solo lo modifican la edición del equipo
// y la baja de stock; los movimientos "in"/"out" del ledger no lo recalculan.
type Equipment struct {
	ID          string
	Name        string
	Description *string
	Quantity    int // siempre >= 0
	Category    *string
	Location    *string
	Status      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Deref devuelve el valor de un campo opcional o "" si es nulo.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NullIfEmpty normaliza los campos opcionales de formulario: vacío -> nulo.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
