package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

const tableProfiles = "profiles"

type profileRow struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      *string   `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r profileRow) toEntity() *entity.Profile {
	return &entity.Profile{
		ID:        r.ID,
		Email:     r.Email,
		FullName:  r.FullName,
		Role:      entity.Role(entity.Deref(r.Role)),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ProfileRepo implementa repository.ProfileRepository sobre PostgREST.
type ProfileRepo struct{ c *Client }

// NewProfileRepo construye el repositorio.
func NewProfileRepo(c *Client) *ProfileRepo { return &ProfileRepo{c: c} }

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	row, err := getOne[profileRow](ctx, r.c, tableProfiles, url.Values{"select": {"*"}, "id": {eq(id)}})
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	var rows []profileRow
	q := url.Values{"select": {"*"}, "order": {"email.asc"}}
	if err := r.c.rest(ctx, http.MethodGet, tableProfiles, q, nil, "", &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *ProfileRepo) UpdateFullName(ctx context.Context, id, fullName string) error {
	body := map[string]any{"full_name": entity.NullIfEmpty(fullName), "updated_at": time.Now().UTC()}
	return mutate(ctx, r.c, http.MethodPatch, tableProfiles, url.Values{"id": {eq(id)}}, body)
}
