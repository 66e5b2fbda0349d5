package repository

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// ProfileRepository define el puerto de lectura/escritura directa sobre profiles.
// Los cambios de rol y los altas/bajas van por UserAdminGateway (RPC).
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	// List devuelve todos los perfiles ordenados por email.
	List(ctx context.Context) ([]*entity.Profile, error)
	UpdateFullName(ctx context.Context, id, fullName string) error
}

// UserAdminGateway funciones privilegiadas del servidor (stored procedures).
// El backend verifica el rol del llamador; aquí solo se invocan.
type UserAdminGateway interface {
	CreateUserProfile(ctx context.Context, userID, email, fullName string, role entity.Role) error
	UpdateUserRole(ctx context.Context, userID, fullName string, role entity.Role) error
	AdminUpdateUserPassword(ctx context.Context, userID, newPassword string) error
	DeleteUserSafely(ctx context.Context, userID string) error
}
