package postgres

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

var (
	_ repository.ProfileRepository = (*ProfileRepo)(nil)
	_ repository.UserAdminGateway  = (*ProfileRepo)(nil)
)

const profileColumns = `id::text, email, full_name, COALESCE(role, ''), created_at, COALESCE(updated_at, created_at)`

// ProfileRepo perfiles y funciones privilegiadas de usuarios sobre PostgreSQL.
type ProfileRepo struct {
	s scope
}

// NewProfileRepository construye el adaptador sobre db.
func NewProfileRepository(db *DB) *ProfileRepo {
	return &ProfileRepo{s: db}
}

func scanProfile(row interface{ Scan(dest ...any) error }) (*entity.Profile, error) {
	var p entity.Profile
	var role string
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Role = entity.Role(role)
	return &p, nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var p *entity.Profile
	err := r.s.do(ctx, func(q Querier) error {
		var err error
		p, err = scanProfile(q.QueryRow(ctx, `SELECT `+profileColumns+` FROM public.profiles WHERE id::text = $1`, id))
		return mapErr("get profile", err)
	})
	return p, err
}

func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	var out []*entity.Profile
	err := r.s.do(ctx, func(q Querier) error {
		rows, err := q.Query(ctx, `SELECT `+profileColumns+` FROM public.profiles ORDER BY email ASC`)
		if err != nil {
			return mapErr("list profiles", err)
		}
		defer rows.Close()
		for rows.Next() {
			p, err := scanProfile(rows)
			if err != nil {
				return mapErr("scan profile", err)
			}
			out = append(out, p)
		}
		return mapErr("list profiles", rows.Err())
	})
	return out, err
}

func (r *ProfileRepo) UpdateFullName(ctx context.Context, id, fullName string) error {
	return r.s.do(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, `UPDATE public.profiles SET full_name = $2, updated_at = now() WHERE id::text = $1`,
			id, entity.NullIfEmpty(fullName))
		return affected(tag, err, "update profile")
	})
}

// Las funciones remotas se invocan como SELECT public.<fn>(...) con los mismos parámetros nombrados que por REST.

func (r *ProfileRepo) CreateUserProfile(ctx context.Context, userID, email, fullName string, role entity.Role) error {
	return r.call(ctx, "create_user_profile",
		`SELECT public.create_user_profile(user_id => $1::uuid, user_email => $2, user_full_name => $3, user_role => $4)`,
		userID, email, fullName, string(role))
}

func (r *ProfileRepo) UpdateUserRole(ctx context.Context, userID, fullName string, role entity.Role) error {
	return r.call(ctx, "update_user_role",
		`SELECT public.update_user_role(user_id => $1::uuid, new_role => $2, new_full_name => $3)`,
		userID, string(role), fullName)
}

func (r *ProfileRepo) AdminUpdateUserPassword(ctx context.Context, userID, newPassword string) error {
	return r.call(ctx, "admin_update_user_password",
		`SELECT public.admin_update_user_password(user_id => $1::uuid, new_password => $2)`,
		userID, newPassword)
}

func (r *ProfileRepo) DeleteUserSafely(ctx context.Context, userID string) error {
	return r.call(ctx, "delete_user_safely",
		`SELECT public.delete_user_safely(user_id_to_delete => $1::uuid)`, userID)
}

func (r *ProfileRepo) call(ctx context.Context, fn, query string, args ...any) error {
	return r.s.do(ctx, func(q Querier) error {
		_, err := q.Exec(ctx, query, args...)
		return mapErr(fn, err)
	})
}
