package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// EquipmentRepo implementa repository.EquipmentRepository.
type EquipmentRepo struct{ s *Store }

func (r *EquipmentRepo) List(ctx context.Context) ([]*entity.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("equipment.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.Equipment, 0, len(r.s.equipment))
	for _, e := range r.s.equipment {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.get("equipment.get", id)
}

func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.get("equipment.get_for_update", id)
}

func (r *EquipmentRepo) get(op, id string) (*entity.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin(op); err != nil {
		return nil, err
	}
	e, ok := r.s.equipment[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("equipment.create"); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	r.s.equipment[e.ID] = &cp
	return nil
}

func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("equipment.update"); err != nil {
		return err
	}
	cur, ok := r.s.equipment[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	e.CreatedAt = cur.CreatedAt
	e.UpdatedAt = r.s.now()
	cp := *e
	r.s.equipment[e.ID] = &cp
	return nil
}

func (r *EquipmentRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("equipment.update_quantity"); err != nil {
		return err
	}
	cur, ok := r.s.equipment[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Quantity = quantity
	cur.UpdatedAt = r.s.now()
	return nil
}

func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.begin("equipment.delete"); err != nil {
		return err
	}
	for _, m := range r.s.movements {
		if m.EquipmentID == id {
			return ErrForeignKey
		}
	}
	delete(r.s.equipment, id)
	return nil
}
