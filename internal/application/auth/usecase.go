package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/domain/repository"
)

// AuthUseCase casos de uso de autenticación: login, renovación, logout y sincronización
// del perfil hacia los metadatos de la sesión.
type AuthUseCase struct {
	gateway  Gateway
	profiles repository.ProfileRepository
	retry    RetryPolicy
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth con la política de reintento del login.
func NewAuthUseCase(gateway Gateway, profiles repository.ProfileRepository, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, profiles: profiles, retry: EmailNotConfirmedPolicy(), log: log}
}

// WithRetryPolicy reemplaza la política de reintento (tests).
func (uc *AuthUseCase) WithRetryPolicy(p RetryPolicy) *AuthUseCase {
	uc.retry = p
	return uc
}

// SignIn autentica con email/password. Reintenta solo ante "Email not confirmed".
// Tras el login copia rol y nombre del Profile a los metadatos; si eso falla se registra y
// el login sigue siendo válido.
func (uc *AuthUseCase) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.Validation("Email e senha são obrigatórios.")
	}
	session, err := Retry(ctx, uc.retry, func(ctx context.Context) (*entity.Session, error) {
		return uc.gateway.SignInWithPassword(ctx, email, password)
	})
	if err != nil {
		return nil, err
	}
	user, err := uc.SyncMetadata(ctx, session)
	if err != nil {
		uc.log.Warn().Err(err).Str("user_id", session.User.ID).Msg("no se pudo sincronizar el perfil con la sesión")
		return session, nil
	}
	session.User = *user
	return session, nil
}

// SyncMetadata lee el Profile del dueño de la sesión y empuja {role, full_name} a user_metadata.
// Si el perfil no tiene rol no hay nada que sincronizar y se devuelve el usuario actual.
func (uc *AuthUseCase) SyncMetadata(ctx context.Context, session *entity.Session) (*entity.AuthUser, error) {
	if session == nil {
		return nil, domain.ErrUnauthorized
	}
	ctx = entity.WithPrincipal(ctx, session.Principal())
	profile, err := uc.profiles.GetByID(ctx, session.User.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Role == "" {
		user := session.User
		return &user, nil
	}
	meta := entity.UserMetadata{Role: profile.Role, FullName: entity.Deref(profile.FullName)}
	return uc.gateway.UpdateUserMetadata(ctx, session.AccessToken, meta)
}

// RefreshMetadata sincroniza los metadatos de la sesión del principal (API sin estado de sesión).
func (uc *AuthUseCase) RefreshMetadata(ctx context.Context, caller entity.Principal) error {
	session := &entity.Session{
		AccessToken: caller.AccessToken,
		User:        entity.AuthUser{ID: caller.UserID, Email: caller.Email},
	}
	_, err := uc.SyncMetadata(ctx, session)
	return err
}

// Refresh renueva la sesión con el refresh token.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, domain.Validation("Sessão expirada. Faça login novamente.")
	}
	return uc.gateway.RefreshSession(ctx, refreshToken)
}

// SignOut invalida la sesión en el backend.
func (uc *AuthUseCase) SignOut(ctx context.Context, accessToken string) error {
	return uc.gateway.SignOut(ctx, accessToken)
}

// Me devuelve el usuario del token, con los metadatos vigentes en el backend.
func (uc *AuthUseCase) Me(ctx context.Context, accessToken string) (*entity.AuthUser, error) {
	return uc.gateway.GetUser(ctx, accessToken)
}

// ToSessionResponse arma la respuesta HTTP de una sesión.
func ToSessionResponse(s *entity.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	return &dto.SessionResponse{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresAt:    s.ExpiresAt,
		User:         ToUserInfo(&s.User),
	}
}

// ToUserInfo datos mínimos del usuario autenticado.
func ToUserInfo(u *entity.AuthUser) dto.SessionUserInfo {
	role := u.Role()
	return dto.SessionUserInfo{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName(),
		Role:     string(role),
		IsAdmin:  role.IsAdmin(),
	}
}
