package usecase

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// AccountGateway operaciones de cuentas del servicio de auth usadas por la administración de usuarios.
type AccountGateway interface {
	// SignUp crea la identidad con los metadatos iniciales {role, full_name}.
	SignUp(ctx context.Context, email, password string, meta entity.UserMetadata) (*entity.AuthUser, error)
	// AdminConfirmEmail marca el email como confirmado (requiere la service role key).
	AdminConfirmEmail(ctx context.Context, userID string) error
	// UpdatePassword cambia la contraseña del dueño del token.
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
}

// MetadataRefresher vuelve a copiar el Profile del llamador a los metadatos de su sesión.
type MetadataRefresher interface {
	RefreshMetadata(ctx context.Context, caller entity.Principal) error
}
