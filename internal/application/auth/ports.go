package auth

import (
	"context"

	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// Gateway puerto hacia el servicio de autenticación del backend.
// Las operaciones sobre la propia cuenta reciben el access token explícito.
type Gateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*entity.AuthUser, error)
	UpdateUserMetadata(ctx context.Context, accessToken string, meta entity.UserMetadata) (*entity.AuthUser, error)
}

// SessionSource origen de la sesión del cliente (persistencia + notificaciones).
type SessionSource interface {
	Current(ctx context.Context) (*entity.Session, error)
	Save(event entity.AuthEvent, s *entity.Session)
	Clear()
	// Subscribe registra fn y devuelve la función para cancelar la suscripción.
	Subscribe(fn func(event entity.AuthEvent, s *entity.Session)) (unsubscribe func())
}
