// Package memory implementa los puertos de persistencia en memoria, con las mismas
// restricciones que el backend (FK de stock_movements, orden de listados). Lo usan los
// tests de los casos de uso y de los handlers.
package memory

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// ErrForeignKey imita el error de Postgres al violar la FK equipment <- stock_movements.
var ErrForeignKey = errors.New(`violates foreign key constraint "stock_movements_equipment_id_fkey"`)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	equipment map[string]*entity.Equipment
	movements []*entity.StockMovement
	profiles  map[string]*entity.Profile
	calls     []string
	failOn    map[string]error
	now       func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		equipment: map[string]*entity.Equipment{},
		profiles:  map[string]*entity.Profile{},
		failOn:    map[string]error{},
		now:       time.Now,
	}
}

// FailOn hace que la operación op (ej. "equipment.delete") devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

// Calls operaciones ejecutadas, en orden.
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// SeedEquipment agrega un equipo y devuelve su ID.
func (s *Store) SeedEquipment(name string, quantity int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	e := &entity.Equipment{ID: uuid.NewString(), Name: name, Quantity: quantity, CreatedAt: now, UpdatedAt: now}
	s.equipment[e.ID] = e
	return e.ID
}

// SeedProfile agrega o reemplaza un perfil.
func (s *Store) SeedProfile(p entity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.profiles[p.ID] = &cp
}

// Quantity cantidad actual del equipo (-1 si no existe).
func (s *Store) Quantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.equipment[id]; ok {
		return e.Quantity
	}
	return -1
}

// MovementsOf movimientos que referencian el equipo.
func (s *Store) MovementsOf(equipmentID string) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.EquipmentID == equipmentID {
			out = append(out, *m)
		}
	}
	return out
}

// begin registra la operación y devuelve el error inyectado, si hay. Debe llamarse con mu tomado.
func (s *Store) begin(op string) error {
	s.calls = append(s.calls, op)
	return s.failOn[op]
}

// Equipment repositorio de equipos.
func (s *Store) Equipment() *EquipmentRepo { return &EquipmentRepo{s: s} }

// Movements repositorio del ledger.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Profiles repositorio de perfiles.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s: s} }

// TxRunner unidad de trabajo secuencial (sin rollback), igual que el adaptador REST.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }
