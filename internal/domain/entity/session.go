package entity

import (
	"context"
	"time"
)

// AuthUser identidad del servicio de auth con sus metadatos mutables.
type AuthUser struct {
	ID               string
	Email            string
	UserMetadata     map[string]any
	AppMetadata      map[string]any
	EmailConfirmedAt *time.Time
	CreatedAt        time.Time
}

// Role rol de la aplicación: administrador si app_metadata.role o user_metadata.role lo es.
func (u *AuthUser) Role() Role {
	if u == nil {
		return RoleUser
	}
	app, _ := u.AppMetadata["role"].(string)
	user, _ := u.UserMetadata["role"].(string)
	if RoleFromClaim(app).IsAdmin() || RoleFromClaim(user).IsAdmin() {
		return RoleAdmin
	}
	return RoleUser
}

// FullName user_metadata.full_name.
func (u *AuthUser) FullName() string {
	if u == nil {
		return ""
	}
	s, _ := u.UserMetadata["full_name"].(string)
	return s
}

// UserMetadata datos que se sincronizan desde el Profile a la sesión tras el login.
type UserMetadata struct {
	Role     Role
	FullName string
}

// AsMap forma que espera el servicio de auth en "data".
func (m UserMetadata) AsMap() map[string]any {
	return map[string]any{"role": string(m.Role), "full_name": m.FullName}
}

// Session sesión activa: tokens + usuario.
type Session struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresAt    time.Time
	User         AuthUser
}

// Expired informa si el access token ya venció en now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || (!s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt))
}

// Principal identidad del llamador en una petición.
func (s *Session) Principal() Principal {
	return Principal{
		UserID:      s.User.ID,
		Email:       s.User.Email,
		Role:        s.User.Role(),
		FullName:    s.User.FullName(),
		AccessToken: s.AccessToken,
	}
}

// Principal quién ejecuta una operación y con qué token habla con el backend.
// El rol se resuelve una vez (desde el token o la sesión) y viaja tipado.
type Principal struct {
	UserID      string
	Email       string
	Role        Role
	FullName    string
	AccessToken string
}

type principalKey struct{}

// WithPrincipal adjunta el principal al contexto; los adaptadores del backend lo usan para autenticar.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom recupera el principal del contexto.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != ""
}

// AuthEvent notificación de cambio de sesión.
type AuthEvent string

// Eventos de sesión.
const (
	EventInitialSession AuthEvent = "INITIAL_SESSION"
	EventSignedIn       AuthEvent = "SIGNED_IN"
	EventSignedOut      AuthEvent = "SIGNED_OUT"
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	EventUserUpdated    AuthEvent = "USER_UPDATED"
)
