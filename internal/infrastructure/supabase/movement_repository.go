package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

const (
	tableMovements  = "stock_movements"
	movementsSelect = "*,equipment(name)"
)

type movementRow struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipment_id"`
	Quantity    int       `json:"quantity"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Equipment   *struct {
		Name string `json:"name"`
	} `json:"equipment"`
}

func (r movementRow) toEntity() *entity.StockMovement {
	m := &entity.StockMovement{
		ID:          r.ID,
		EquipmentID: r.EquipmentID,
		Quantity:    r.Quantity,
		Type:        entity.MovementType(r.Type),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
	if r.Equipment != nil {
		m.EquipmentName = r.Equipment.Name
	}
	return m
}

// MovementRepo implementa repository.StockMovementRepository sobre PostgREST.
type MovementRepo struct{ c *Client }

// NewMovementRepo construye el repositorio.
func NewMovementRepo(c *Client) *MovementRepo { return &MovementRepo{c: c} }

func (r *MovementRepo) List(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.list(ctx, url.Values{"select": {movementsSelect}, "order": {"created_at.desc"}})
}

func (r *MovementRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.StockMovement, error) {
	return r.list(ctx, url.Values{
		"select":     {movementsSelect},
		"order":      {"created_at.desc"},
		"created_at": {"gte." + since.UTC().Format(time.RFC3339)},
	})
}

func (r *MovementRepo) list(ctx context.Context, q url.Values) ([]*entity.StockMovement, error) {
	var rows []movementRow
	if err := r.c.rest(ctx, http.MethodGet, tableMovements, q, nil, "", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	body := map[string]any{
		"equipment_id": m.EquipmentID,
		"quantity":     m.Quantity,
		"type":         string(m.Type),
		"description":  m.Description,
	}
	var rows []movementRow
	if err := r.c.rest(ctx, http.MethodPost, tableMovements, nil, body, "return=representation", &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		m.ID = rows[0].ID
		m.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	return mutate(ctx, r.c, http.MethodDelete, tableMovements, url.Values{"id": {eq(id)}}, nil)
}

// DeleteByEquipment no exige filas afectadas: un equipo sin movimientos es válido.
func (r *MovementRepo) DeleteByEquipment(ctx context.Context, equipmentID string) error {
	return r.c.rest(ctx, http.MethodDelete, tableMovements, url.Values{"equipment_id": {eq(equipmentID)}}, nil, "return=minimal", nil)
}
