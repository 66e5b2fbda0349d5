package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct{ s *Store }

func (r *MovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.list("movements.list", time.Time{})
}

func (r *MovementRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error) {
	return r.list("movements.list_since", since)
}

// list devuelve del más reciente al más antiguo, con el nombre del equipo resuelto.
func (r *MovementRepo) list(op string, since time.Time) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin(op); err != nil {
		return nil, err
	}
	out := make([]*entity.StockMovement, 0, len(r.s.movements))
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := *r.s.movements[i]
		if m.CreatedAt.Before(since) {
			continue
		}
		m.EquipmentName = ""
		if e, ok := r.s.equipment[m.EquipmentID]; ok {
			m.EquipmentName = e.Name
		}
		out = append(out, &m)
	}
	return out, nil
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("movements.create"); err != nil {
		return err
	}
	if _, ok := r.s.equipment[m.EquipmentID]; !ok {
		return ErrForeignKey
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("movements.delete"); err != nil {
		return err
	}
	for i, m := range r.s.movements {
		if m.ID == id {
			r.s.movements = append(r.s.movements[:i], r.s.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *MovementRepo) DeleteByEquipment(ctx context.Context, equipmentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("movements.delete_by_equipment"); err != nil {
		return err
	}
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.EquipmentID != equipmentID {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}
