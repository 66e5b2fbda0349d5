package supabase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

var (
	_ auth.Gateway           = (*AuthClient)(nil)
	_ usecase.AccountGateway = (*AuthClient)(nil)
	_ auth.SessionSource     = (*SessionManager)(nil)
)

const sessionJSON = `{
	"access_token":"at-1","refresh_token":"rt-1","token_type":"bearer","expires_in":3600,"expires_at":1893456000,
	"user":{"id":"u-1","email":"ana@empresa.com","user_metadata":{"role":"admin","full_name":"Ana"},"app_metadata":{"provider":"email"},"created_at":"2024-05-02T10:00:00Z"}
}`

func TestAuthClient_SignInWithPassword(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("POST /auth/v1/token", 200, sessionJSON)

	s, err := NewAuthClient(c).SignInWithPassword(context.Background(), "ana@empresa.com", "segredo1")

	require.NoError(t, err)
	assert.Equal(t, "at-1", s.AccessToken)
	assert.Equal(t, "rt-1", s.RefreshToken)
	assert.Equal(t, time.Unix(1893456000, 0), s.ExpiresAt)
	assert.Equal(t, entity.RoleAdmin, s.User.Role())
	assert.Equal(t, "Ana", s.User.FullName())

	req := fb.last()
	assert.Equal(t, "password", req.Query["grant_type"])
	assert.Equal(t, "ana@empresa.com", req.Body["email"])
	assert.Equal(t, "Bearer anon-key", req.Auth)
}

func TestAuthClient_EmailNoConfirmadoSeReconoce(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("POST /auth/v1/token", 400, `{"error_code":"email_not_confirmed","msg":"Email not confirmed"}`)

	_, err := NewAuthClient(c).SignInWithPassword(context.Background(), "ana@empresa.com", "segredo1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmailNotConfirmed)
	assert.True(t, auth.IsEmailNotConfirmed(err))
}

func TestAuthClient_CredencialesInvalidasNoSeReintentan(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("POST /auth/v1/token", 400, `{"error_code":"invalid_credentials","msg":"Invalid login credentials"}`)

	_, err := NewAuthClient(c).SignInWithPassword(context.Background(), "ana@empresa.com", "x")

	require.Error(t, err)
	assert.False(t, auth.IsEmailNotConfirmed(err))
	assert.Equal(t, "Email ou senha inválidos.", domain.FriendlyMessage(err, ""))
}

func TestAuthClient_RefreshSession(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("POST /auth/v1/token", 200, sessionJSON)

	_, err := NewAuthClient(c).RefreshSession(context.Background(), "rt-0")

	require.NoError(t, err)
	assert.Equal(t, "refresh_token", fb.last().Query["grant_type"])
	assert.Equal(t, "rt-0", fb.last().Body["refresh_token"])
}

func TestAuthClient_UpdateUserMetadataConTokenDelUsuario(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("PUT /auth/v1/user", 200, `{"id":"u-1","email":"ana@empresa.com","user_metadata":{"role":"user","full_name":"Ana S."}}`)

	u, err := NewAuthClient(c).UpdateUserMetadata(context.Background(), "at-1",
		entity.UserMetadata{Role: entity.RoleUser, FullName: "Ana S."})

	require.NoError(t, err)
	assert.Equal(t, "Ana S.", u.FullName())
	req := fb.last()
	assert.Equal(t, "Bearer at-1", req.Auth)
	assert.Equal(t, map[string]any{"role": "user", "full_name": "Ana S."}, req.Body["data"])
}

func TestAuthClient_UpdatePassword(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("PUT /auth/v1/user", 200, `{"id":"u-1"}`)

	require.NoError(t, NewAuthClient(c).UpdatePassword(context.Background(), "at-1", "nova-senha"))
	assert.Equal(t, "nova-senha", fb.last().Body["password"])
}

func TestAuthClient_SignUpAceptaUsuarioOSesion(t *testing.T) {
	t.Run("usuario", func(t *testing.T) {
		fb, c := newFakeBackend(t)
		fb.on("POST /auth/v1/signup", 200, `{"id":"u-9","email":"bia@empresa.com"}`)

		u, err := NewAuthClient(c).SignUp(context.Background(), "bia@empresa.com", "segredo1",
			entity.UserMetadata{Role: entity.RoleUser, FullName: "Bia"})

		require.NoError(t, err)
		assert.Equal(t, "u-9", u.ID)
		assert.Equal(t, map[string]any{"role": "user", "full_name": "Bia"}, fb.last().Body["data"])
	})
	t.Run("sesion", func(t *testing.T) {
		fb, c := newFakeBackend(t)
		fb.on("POST /auth/v1/signup", 200, sessionJSON)

		u, err := NewAuthClient(c).SignUp(context.Background(), "ana@empresa.com", "segredo1", entity.UserMetadata{})

		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
	})
}

func TestAuthClient_AdminConfirmEmailUsaServiceRole(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("PUT /auth/v1/admin/users/u-9", 200, `{"id":"u-9"}`)

	require.NoError(t, NewAuthClient(c).AdminConfirmEmail(context.Background(), "u-9"))

	req := fb.last()
	assert.Equal(t, "Bearer service-key", req.Auth)
	assert.Equal(t, "service-key", req.APIKey)
	assert.Equal(t, true, req.Body["email_confirm"])
}

func TestAuthClient_AdminConfirmEmailSinServiceRole(t *testing.T) {
	_, c := newFakeBackend(t)
	c.serviceRoleKey = ""

	err := NewAuthClient(c).AdminConfirmEmail(context.Background(), "u-9")

	assert.ErrorIs(t, err, domain.ErrBackend)
}

func TestAuthClient_SignOut(t *testing.T) {
	fb, c := newFakeBackend(t)
	fb.on("POST /auth/v1/logout", 204, ``)

	require.NoError(t, NewAuthClient(c).SignOut(context.Background(), "at-1"))
	assert.Equal(t, "Bearer at-1", fb.last().Auth)
}
