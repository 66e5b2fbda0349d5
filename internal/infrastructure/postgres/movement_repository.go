package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

const movementSelect = `
	SELECT m.id::text, m.equipment_id::text, COALESCE(e.name, ''), m.quantity, m.type, m.description, m.created_at
	FROM public.stock_movements m
	LEFT JOIN public.equipment e ON e.id = m.equipment_id`

// MovementRepo ledger de movimientos sobre PostgreSQL.
type MovementRepo struct {
	s scope
}

// NewMovementRepository construye el adaptador sobre db.
func NewMovementRepository(db *DB) *MovementRepo {
	return &MovementRepo{s: db}
}

// List movimientos más recientes primero con el nombre del equipo.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.list(ctx, movementSelect+` ORDER BY m.created_at DESC`)
}

// ListSince movimientos desde since.
func (r *MovementRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error) {
	return r.list(ctx, movementSelect+` WHERE m.created_at >= $1 ORDER BY m.created_at DESC`, since)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.s.do(ctx, func(q Querier) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return mapErr("list movements", err)
		}
		defer rows.Close()
		for rows.Next() {
			var m entity.StockMovement
			var typ string
			if err := rows.Scan(&m.ID, &m.EquipmentID, &m.EquipmentName, &m.Quantity, &typ, &m.Description, &m.CreatedAt); err != nil {
				return mapErr("scan movement", err)
			}
			m.Type = entity.MovementType(typ)
			out = append(out, &m)
		}
		return mapErr("list movements", rows.Err())
	})
	return out, err
}

// Create persiste un movimiento bloqueando antes la fila del equipo.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return r.s.do(ctx, func(q Querier) error {
		// La FK solo toma KEY SHARE sobre el equipo; sin este bloqueo dos bajas concurrentes
		// se esperan mutuamente al pedir FOR UPDATE.
		if _, err := q.Exec(ctx, `SELECT 1 FROM public.equipment WHERE id = $1 FOR UPDATE`, m.EquipmentID); err != nil {
			return mapErr("lock equipment", err)
		}
		err := q.QueryRow(ctx, `
			INSERT INTO public.stock_movements (id, equipment_id, quantity, type, description)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at`,
			m.ID, m.EquipmentID, m.Quantity, string(m.Type), m.Description,
		).Scan(&m.CreatedAt)
		return mapErr("create movement", err)
	})
}

// Delete elimina la fila del ledger.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	return r.s.do(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, `DELETE FROM public.stock_movements WHERE id = $1`, id)
		return affected(tag, err, "delete movement")
	})
}

// DeleteByEquipment elimina todos los movimientos del equipo (puede no haber ninguno).
func (r *MovementRepo) DeleteByEquipment(ctx context.Context, equipmentID string) error {
	return r.s.do(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, `DELETE FROM public.stock_movements WHERE equipment_id = $1`, equipmentID)
		return mapErr("delete movements by equipment", err)
	})
}
