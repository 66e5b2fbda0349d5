package supabase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/pkg/fetch"
)

// AuthClient servicio de auth del backend (/auth/v1).
// Implementa auth.Gateway y usecase.AccountGateway.
type AuthClient struct {
	c   *Client
	now func() time.Time
}

// NewAuthClient construye el cliente de auth.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c, now: time.Now}
}

type userWire struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	UserMetadata     map[string]any `json:"user_metadata"`
	AppMetadata      map[string]any `json:"app_metadata"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
	CreatedAt        time.Time      `json:"created_at"`
}

func (u userWire) toEntity() *entity.AuthUser {
	return &entity.AuthUser{
		ID:               u.ID,
		Email:            u.Email,
		UserMetadata:     u.UserMetadata,
		AppMetadata:      u.AppMetadata,
		EmailConfirmedAt: u.EmailConfirmedAt,
		CreatedAt:        u.CreatedAt,
	}
}

type sessionWire struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	User         userWire `json:"user"`
}

func (s sessionWire) toEntity(now time.Time) *entity.Session {
	expires := time.Unix(s.ExpiresAt, 0)
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		expires = now.Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return &entity.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    s.TokenType,
		ExpiresAt:    expires,
		User:         *s.User.toEntity(),
	}
}

// SignInWithPassword grant_type=password.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	return a.token(ctx, "password", map[string]any{"email": email, "password": password})
}

// RefreshSession grant_type=refresh_token.
func (a *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return a.token(ctx, "refresh_token", map[string]any{"refresh_token": refreshToken})
}

func (a *AuthClient) token(ctx context.Context, grant string, body map[string]any) (*entity.Session, error) {
	var out sessionWire
	err := a.c.http.Do(ctx, fetch.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/v1/token",
		Query:    url.Values{"grant_type": {grant}},
		Header:   a.c.bearer(""),
		Body:     body,
	}, &out)
	if err != nil {
		return nil, backendError(err)
	}
	return out.toEntity(a.now()), nil
}

// SignOut invalida la sesión del token en el backend.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	err := a.c.http.Do(ctx, fetch.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/v1/logout",
		Header:   a.c.tokenHeaders(accessToken),
	}, nil)
	return backendError(err)
}

// GetUser usuario dueño del token con sus metadatos actuales.
func (a *AuthClient) GetUser(ctx context.Context, accessToken string) (*entity.AuthUser, error) {
	var out userWire
	err := a.c.http.Do(ctx, fetch.Request{
		Endpoint: "/auth/v1/user",
		Header:   a.c.tokenHeaders(accessToken),
	}, &out)
	if err != nil {
		return nil, backendError(err)
	}
	return out.toEntity(), nil
}

// UpdateUserMetadata reemplaza {role, full_name} en user_metadata del dueño del token.
func (a *AuthClient) UpdateUserMetadata(ctx context.Context, accessToken string, meta entity.UserMetadata) (*entity.AuthUser, error) {
	return a.updateUser(ctx, accessToken, map[string]any{"data": meta.AsMap()})
}

// UpdatePassword cambia la contraseña del dueño del token.
func (a *AuthClient) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	_, err := a.updateUser(ctx, accessToken, map[string]any{"password": newPassword})
	return err
}

func (a *AuthClient) updateUser(ctx context.Context, accessToken string, body map[string]any) (*entity.AuthUser, error) {
	var out userWire
	err := a.c.http.Do(ctx, fetch.Request{
		Method:   http.MethodPut,
		Endpoint: "/auth/v1/user",
		Header:   a.c.tokenHeaders(accessToken),
		Body:     body,
	}, &out)
	if err != nil {
		return nil, backendError(err)
	}
	return out.toEntity(), nil
}

// SignUp crea la identidad con los metadatos iniciales.
// Según la configuración del proyecto la respuesta es el usuario o una sesión con el usuario.
func (a *AuthClient) SignUp(ctx context.Context, email, password string, meta entity.UserMetadata) (*entity.AuthUser, error) {
	var out struct {
		userWire
		User *userWire `json:"user"`
	}
	err := a.c.http.Do(ctx, fetch.Request{
		Method:   http.MethodPost,
		Endpoint: "/auth/v1/signup",
		Header:   a.c.bearer(""),
		Body: map[string]any{
			"email":    email,
			"password": password,
			"data":     meta.AsMap(),
		},
	}, &out)
	if err != nil {
		return nil, backendError(err)
	}
	if out.User != nil && out.User.ID != "" {
		return out.User.toEntity(), nil
	}
	return out.userWire.toEntity(), nil
}

// AdminConfirmEmail marca el email como confirmado con la service role key.
func (a *AuthClient) AdminConfirmEmail(ctx context.Context, userID string) error {
	h, err := a.c.serviceHeaders()
	if err != nil {
		return domain.Wrap(domain.ErrBackend, "Não foi possível confirmar o email do usuário.", err)
	}
	err = a.c.http.Do(ctx, fetch.Request{
		Method:   http.MethodPut,
		Endpoint: "/auth/v1/admin/users/" + url.PathEscape(userID),
		Header:   h,
		Body:     map[string]any{"email_confirm": true},
	}, nil)
	return backendError(err)
}
