package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

const tableEquipment = "equipment"

type equipmentRow struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Quantity    int       `json:"quantity"`
	Category    *string   `json:"category"`
	Location    *string   `json:"location"`
	Status      *string   `json:"status"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (r equipmentRow) toEntity() *entity.Equipment {
	return &entity.Equipment{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Category:    r.Category,
		Location:    r.Location,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// equipmentWrite campos editables; id y timestamps los pone el backend.
func equipmentWrite(e *entity.Equipment) map[string]any {
	return map[string]any{
		"name":        e.Name,
		"description": e.Description,
		"quantity":    e.Quantity,
		"category":    e.Category,
		"location":    e.Location,
		"status":      e.Status,
	}
}

// EquipmentRepo implementa repository.EquipmentRepository sobre PostgREST.
type EquipmentRepo struct{ c *Client }

// NewEquipmentRepo construye el repositorio.
func NewEquipmentRepo(c *Client) *EquipmentRepo { return &EquipmentRepo{c: c} }

func (r *EquipmentRepo) List(ctx context.Context) ([]*entity.Equipment, error) {
	var rows []equipmentRow
	q := url.Values{"select": {"*"}, "order": {"name.asc"}}
	if err := r.c.rest(ctx, http.MethodGet, tableEquipment, q, nil, "", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Equipment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	row, err := getOne[equipmentRow](ctx, r.c, tableEquipment, url.Values{"select": {"*"}, "id": {eq(id)}})
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// GetForUpdate por REST no hay bloqueo: es una lectura fresca.
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.GetByID(ctx, id)
}

func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	var rows []equipmentRow
	if err := r.c.rest(ctx, http.MethodPost, tableEquipment, nil, equipmentWrite(e), "return=representation", &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*e = *rows[0].toEntity()
	}
	return nil
}

func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	body := equipmentWrite(e)
	body["updated_at"] = time.Now().UTC()
	rows, err := mutateRows[equipmentRow](ctx, r.c, http.MethodPatch, tableEquipment, url.Values{"id": {eq(e.ID)}}, body)
	if err != nil {
		return err
	}
	*e = *rows[0].toEntity()
	return nil
}

func (r *EquipmentRepo) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	body := map[string]any{"quantity": quantity, "updated_at": time.Now().UTC()}
	return mutate(ctx, r.c, http.MethodPatch, tableEquipment, url.Values{"id": {eq(id)}}, body)
}

func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	return mutate(ctx, r.c, http.MethodDelete, tableEquipment, url.Values{"id": {eq(id)}}, nil)
}
