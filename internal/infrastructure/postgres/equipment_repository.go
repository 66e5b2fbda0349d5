package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

const equipmentColumns = `id::text, name, description, quantity, category, location, status, created_at, updated_at`

// EquipmentRepo implementación sobre PostgreSQL (usable con el DB o dentro de un TxRunner).
type EquipmentRepo struct {
	s scope
}

// NewEquipmentRepository construye el adaptador sobre db.
func NewEquipmentRepository(db *DB) *EquipmentRepo {
	return &EquipmentRepo{s: db}
}

func scanEquipment(row interface{ Scan(dest ...any) error }) (*entity.Equipment, error) {
	var e entity.Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Quantity, &e.Category, &e.Location, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List todos los equipos por nombre.
func (r *EquipmentRepo) List(ctx context.Context) ([]*entity.Equipment, error) {
	var out []*entity.Equipment
	err := r.s.do(ctx, func(q Querier) error {
		rows, err := q.Query(ctx, `SELECT `+equipmentColumns+` FROM public.equipment ORDER BY name ASC`)
		if err != nil {
			return mapErr("list equipment", err)
		}
		defer rows.Close()
		for rows.Next() {
			e, err := scanEquipment(rows)
			if err != nil {
				return mapErr("scan equipment", err)
			}
			out = append(out, e)
		}
		return mapErr("list equipment", rows.Err())
	})
	return out, err
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM public.equipment WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.get(ctx, `SELECT `+equipmentColumns+` FROM public.equipment WHERE id = $1 FOR UPDATE`, id)
}

func (r *EquipmentRepo) get(ctx context.Context, query, id string) (*entity.Equipment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	var e *entity.Equipment
	err := r.s.do(ctx, func(q Querier) error {
		var err error
		e, err = scanEquipment(q.QueryRow(ctx, query, id))
		return mapErr("get equipment", err)
	})
	return e, err
}

// Create inserta el equipo y completa ID y timestamps.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return r.s.do(ctx, func(q Querier) error {
		err := q.QueryRow(ctx, `
			INSERT INTO public.equipment (id, name, description, quantity, category, location, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at`,
			e.ID, e.Name, e.Description, e.Quantity, e.Category, e.Location, e.Status,
		).Scan(&e.CreatedAt, &e.UpdatedAt)
		return mapErr("create equipment", err)
	})
}

// Update reemplaza los campos editables y relee los timestamps.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	if _, err := uuid.Parse(e.ID); err != nil {
		return domain.ErrNotFound
	}
	return r.s.do(ctx, func(q Querier) error {
		err := q.QueryRow(ctx, `
			UPDATE public.equipment
			SET name = $2, description = $3, quantity = $4, category = $5, location = $6, status = $7, updated_at = now()
			WHERE id = $1
			RETURNING created_at, updated_at`,
			e.ID, e.Name, e.Description, e.Quantity, e.Category, e.Location, e.Status,
		).Scan(&e.CreatedAt, &e.UpdatedAt)
		return mapErr("update equipment", err)
	})
}

// UpdateQuantity escribe la cantidad.
func (r *EquipmentRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.s.do(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE public.equipment SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
		return affected(tag, err, "update equipment quantity")
	})
}

// Delete elimina el equipo; falla por FK si aún tiene movimientos.
func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	return r.s.do(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM public.equipment WHERE id = $1`, id)
		return affected(tag, err, "delete equipment")
	})
}
