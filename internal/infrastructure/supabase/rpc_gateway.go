package supabase

import (
	"context"
	"net/http"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// RPCGateway implementa repository.UserAdminGateway con las funciones remotas del backend.
// Cada función verifica en el servidor que el llamador sea administrador.
type RPCGateway struct{ c *Client }

// NewRPCGateway construye el gateway.
func NewRPCGateway(c *Client) *RPCGateway { return &RPCGateway{c: c} }

func (g *RPCGateway) call(ctx context.Context, fn string, params map[string]any) error {
	return g.c.rest(ctx, http.MethodPost, "rpc/"+fn, nil, params, "", nil)
}

func (g *RPCGateway) CreateUserProfile(ctx context.Context, userID, email, fullName string, role entity.Role) error {
	return g.call(ctx, "create_user_profile", map[string]any{
		"user_id":        userID,
		"user_email":     email,
		"user_full_name": fullName,
		"user_role":      string(role),
	})
}

func (g *RPCGateway) UpdateUserRole(ctx context.Context, userID, fullName string, role entity.Role) error {
	return g.call(ctx, "update_user_role", map[string]any{
		"user_id":       userID,
		"new_role":      string(role),
		"new_full_name": fullName,
	})
}

func (g *RPCGateway) AdminUpdateUserPassword(ctx context.Context, userID, newPassword string) error {
	return g.call(ctx, "admin_update_user_password", map[string]any{
		"user_id":      userID,
		"new_password": newPassword,
	})
}

func (g *RPCGateway) DeleteUserSafely(ctx context.Context, userID string) error {
	return g.call(ctx, "delete_user_safely", map[string]any{"user_id_to_delete": userID})
}
