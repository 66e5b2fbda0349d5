package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-equipos/internal/application/analytics"
	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-equipos/internal/interfaces/http"
)

const (
	adminID = "00000000-0000-0000-0000-0000000000aa"
	userID  = "00000000-0000-0000-0000-0000000000bb"
)

// fakeAuth servicio de auth: falla con "Email not confirmed" las primeras notConfirmed veces.
type fakeAuth struct {
	notConfirmed int
	attempts     int
	metadata     []entity.UserMetadata
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*entity.Session, error) {
	f.attempts++
	if password != "segredo" {
		return nil, domain.NewError(domain.ErrUnauthorized, "Email ou senha incorretos.")
	}
	if f.attempts <= f.notConfirmed {
		return nil, domain.Wrap(domain.ErrEmailNotConfirmed, "Email não confirmado.", nil)
	}
	return &entity.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "bearer",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         entity.AuthUser{ID: adminID, Email: email, UserMetadata: map[string]any{}},
	}, nil
}

func (f *fakeAuth) RefreshSession(context.Context, string) (*entity.Session, error) {
	return nil, domain.ErrUnauthorized
}

func (f *fakeAuth) SignOut(context.Context, string) error { return nil }

func (f *fakeAuth) GetUser(_ context.Context, _ string) (*entity.AuthUser, error) {
	return &entity.AuthUser{ID: adminID, Email: "admin@empresa.com.br", UserMetadata: map[string]any{"role": "admin"}}, nil
}

func (f *fakeAuth) UpdateUserMetadata(_ context.Context, _ string, meta entity.UserMetadata) (*entity.AuthUser, error) {
	f.metadata = append(f.metadata, meta)
	return &entity.AuthUser{ID: adminID, Email: "admin@empresa.com.br", UserMetadata: meta.AsMap()}, nil
}

type fakeAccounts struct{ signUps int }

func (f *fakeAccounts) SignUp(_ context.Context, email, _ string, _ entity.UserMetadata) (*entity.AuthUser, error) {
	f.signUps++
	return &entity.AuthUser{ID: "00000000-0000-0000-0000-0000000000cc", Email: email, CreatedAt: time.Now()}, nil
}

func (f *fakeAccounts) AdminConfirmEmail(context.Context, string) error { return nil }

func (f *fakeAccounts) UpdatePassword(context.Context, string, string) error { return nil }

type fakeRPC struct{ deleted []string }

func (f *fakeRPC) CreateUserProfile(context.Context, string, string, string, entity.Role) error {
	return nil
}

func (f *fakeRPC) UpdateUserRole(context.Context, string, string, entity.Role) error { return nil }

func (f *fakeRPC) AdminUpdateUserPassword(context.Context, string, string) error { return nil }

func (f *fakeRPC) DeleteUserSafely(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePDF struct{ items int }

func (f *fakePDF) GenerateInventoryPDF(_ context.Context, items []*entity.Equipment, _ time.Time, _ string) ([]byte, error) {
	f.items = len(items)
	return []byte("%PDF-1.4 fake"), nil
}

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	auth  *fakeAuth
	rpc   *fakeRPC
	pdf   *fakePDF
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	log := zerolog.Nop()
	f := &apiFixture{
		store: memory.NewStore(),
		auth:  &fakeAuth{},
		rpc:   &fakeRPC{},
		pdf:   &fakePDF{},
	}
	admin, user := "Ana Admin", "Bruno"
	f.store.SeedProfile(entity.Profile{ID: adminID, Email: "admin@empresa.com.br", FullName: &admin, Role: entity.RoleAdmin})
	f.store.SeedProfile(entity.Profile{ID: userID, Email: "bruno@empresa.com.br", FullName: &user, Role: entity.RoleUser})

	authUC := auth.NewAuthUseCase(f.auth, f.store.Profiles(), log).WithRetryPolicy(auth.RetryPolicy{
		MaxAttempts: 3,
		Retryable:   auth.IsEmailNotConfirmed,
		Sleep:       func(context.Context, time.Duration) error { return nil },
	})

	f.app = fiber.New()
	apphttp.Router(f.app, apphttp.RouterDeps{
		AuthUC:        authUC,
		EquipmentUC:   usecase.NewEquipmentUseCase(f.store.Equipment(), f.store.Profiles(), f.store.TxRunner(), log),
		MovementUC:    inventory.NewMovementUseCase(f.store.Equipment(), f.store.Movements()),
		ReductionUC:   inventory.NewStockReductionUseCase(f.store.TxRunner(), f.store.Equipment(), log),
		UserAdminUC:   usecase.NewUserAdminUseCase(f.store.Profiles(), f.rpc, &fakeAccounts{}, authUC, time.Minute, log),
		DashboardUC:   analytics.NewDashboardUseCase(f.store.Equipment(), f.store.Movements(), 5),
		ReportUC:      analytics.NewReportUseCase(f.store.Equipment(), f.pdf),
		Confirmations: confirm.NewRegistry(time.Minute),
		JWTSecret:     testJWTSecret,
	})
	return f
}

func (f *apiFixture) call(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestAPI_EquipmentCRUD(t *testing.T) {
	f := newAPIFixture(t)
	tok := tokenFor(t, userID, "user")

	resp, raw := f.call(t, http.MethodPost, "/api/equipment", tok, dto.EquipmentRequest{Name: "Notebook", Quantity: 4, Category: "TI"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[dto.EquipmentResponse](t, raw)
	assert.Equal(t, "Notebook", created.Name)

	resp, raw = f.call(t, http.MethodPost, "/api/equipment", tok, dto.EquipmentRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = f.call(t, http.MethodPut, "/api/equipment/"+created.ID, tok, dto.EquipmentRequest{Name: "Notebook", Quantity: 9})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 9, f.store.Quantity(created.ID))

	resp, raw = f.call(t, http.MethodGet, "/api/equipment?q=note", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.EquipmentResponse](t, raw), 1)

	resp, _ = f.call(t, http.MethodGet, "/api/equipment/00000000-0000-0000-0000-000000000999", tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_MovementsNoAlteranCantidad(t *testing.T) {
	f := newAPIFixture(t)
	tok := tokenFor(t, userID, "user")
	id := f.store.SeedEquipment("Mouse", 10)

	resp, raw := f.call(t, http.MethodPost, "/api/movements", tok, dto.RegisterMovementRequest{EquipmentID: id, Quantity: 3, Type: "in"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, 10, f.store.Quantity(id))

	resp, raw = f.call(t, http.MethodGet, "/api/movements", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.MovementResponse](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "Mouse", list[0].EquipmentName)
}

func TestAPI_Reduction(t *testing.T) {
	f := newAPIFixture(t)
	tok := tokenFor(t, userID, "user")
	id := f.store.SeedEquipment("Teclado", 10)

	resp, raw := f.call(t, http.MethodPost, "/api/reductions", tok, dto.StockReductionRequest{
		EquipmentID: id, Quantity: 3, TicketNumber: "4521", Observation: "Troca",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	out := decode[dto.StockReductionResponse](t, raw)
	assert.Equal(t, "Baixa registrada com sucesso!", out.Message)
	assert.Equal(t, 7, f.store.Quantity(id))

	movs := f.store.MovementsOf(id)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementOut, movs[0].Type)
	assert.Equal(t, "Chamado: 4521. Troca", entity.Deref(movs[0].Description))

	resp, raw = f.call(t, http.MethodPost, "/api/reductions", tok, dto.StockReductionRequest{EquipmentID: id, Quantity: 8})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)
	assert.Equal(t, 7, f.store.Quantity(id))
}

func TestAPI_DeleteEquipmentConConfirmacion(t *testing.T) {
	f := newAPIFixture(t)
	admin := tokenFor(t, adminID, "admin")
	id := f.store.SeedEquipment("Monitor", 2)

	resp, raw := f.call(t, http.MethodDelete, "/api/equipment/"+id, admin, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(raw))
	view := decode[dto.ConfirmationView](t, raw)
	assert.True(t, view.Open)
	assert.Equal(t, "Confirmar Exclusão", view.Title)
	assert.Equal(t, `Tem certeza que deseja deletar o equipamento "Monitor"? Esta ação não pode ser desfeita.`, view.Message)
	assert.Equal(t, "Deletar", view.ConfirmLabel)
	assert.Equal(t, 2, f.store.Quantity(id), "nada se borra hasta confirmar")

	// Otro usuario no ve la confirmación ajena.
	resp, _ = f.call(t, http.MethodPost, "/api/confirmations/"+view.ID+"/confirm", tokenFor(t, userID, "user"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = f.call(t, http.MethodPost, "/api/confirmations/"+view.ID+"/confirm", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "Equipamento excluído com sucesso!", decode[dto.ConfirmationResult](t, raw).Message)

	resp, _ = f.call(t, http.MethodGet, "/api/equipment/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = f.call(t, http.MethodGet, "/api/confirmations/"+view.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// El rol se relee del perfil: un usuario común no borra equipos y la confirmación sigue abierta.
func TestAPI_DeleteEquipmentUsuarioComun(t *testing.T) {
	f := newAPIFixture(t)
	tok := tokenFor(t, userID, "user")
	id := f.store.SeedEquipment("Cabo HDMI", 5)

	resp, raw := f.call(t, http.MethodDelete, "/api/equipment/"+id, tok, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	view := decode[dto.ConfirmationView](t, raw)

	resp, raw = f.call(t, http.MethodPost, "/api/confirmations/"+view.ID+"/confirm", tok, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Você não tem permissão para excluir equipamentos.", decode[dto.ErrorResponse](t, raw).Message)
	assert.Equal(t, 5, f.store.Quantity(id))

	resp, raw = f.call(t, http.MethodGet, "/api/confirmations/"+view.ID, tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.ConfirmationView](t, raw).Open)

	resp, _ = f.call(t, http.MethodDelete, "/api/confirmations/"+view.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = f.call(t, http.MethodGet, "/api/confirmations/"+view.ID, tok, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_DeleteMovement(t *testing.T) {
	f := newAPIFixture(t)
	tok := tokenFor(t, userID, "user")
	id := f.store.SeedEquipment("Headset", 4)
	_, raw := f.call(t, http.MethodPost, "/api/movements", tok, dto.RegisterMovementRequest{EquipmentID: id, Quantity: 1, Type: "out"})
	mov := decode[dto.MovementResponse](t, raw)

	resp, raw := f.call(t, http.MethodDelete, "/api/movements/"+mov.ID, tok, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(raw))
	view := decode[dto.ConfirmationView](t, raw)
	assert.Equal(t, `Tem certeza que deseja deletar a movimentação do equipamento "Headset"?`, view.Message)

	resp, raw = f.call(t, http.MethodPost, "/api/confirmations/"+view.ID+"/confirm", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Empty(t, f.store.MovementsOf(id))
	assert.Equal(t, 4, f.store.Quantity(id))
}

func TestAPI_Users(t *testing.T) {
	f := newAPIFixture(t)
	admin := tokenFor(t, adminID, "admin")
	user := tokenFor(t, userID, "user")

	resp, _ := f.call(t, http.MethodGet, "/api/users", user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw := f.call(t, http.MethodGet, "/api/users?q=bruno", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.UserResponse](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "Usuário", list[0].RoleLabel)

	resp, raw = f.call(t, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{
		Email: "carla@empresa.com.br", Password: "123456", FullName: "Carla",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	assert.Equal(t, "user", decode[dto.UserResponse](t, raw).Role)

	resp, raw = f.call(t, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{
		Email: "davi@empresa.com.br", Password: "123456",
	})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	e := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "COOLDOWN", e.Code)
	assert.Positive(t, e.RetryAfter)

	resp, raw = f.call(t, http.MethodGet, "/api/users/cooldown", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.CooldownResponse](t, raw).Active)

	resp, raw = f.call(t, http.MethodDelete, "/api/users/"+userID, admin, nil)
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(raw))
	view := decode[dto.ConfirmationView](t, raw)
	assert.Equal(t, `Tem certeza que deseja deletar o usuário "Bruno"? Esta ação não pode ser desfeita.`, view.Message)

	resp, _ = f.call(t, http.MethodPost, "/api/confirmations/"+view.ID+"/confirm", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{userID}, f.rpc.deleted)
}

func TestAPI_UsuarioEditaSoloSuPerfil(t *testing.T) {
	f := newAPIFixture(t)
	user := tokenFor(t, userID, "user")

	resp, raw := f.call(t, http.MethodPut, "/api/users/"+adminID, user, dto.UpdateProfileRequest{FullName: "Hacker"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, string(raw))

	resp, raw = f.call(t, http.MethodPut, "/api/users/"+userID, user, dto.UpdateProfileRequest{FullName: "Bruno Lima"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "Bruno Lima", decode[dto.UserResponse](t, raw).DisplayName)

	resp, raw = f.call(t, http.MethodPut, "/api/users/"+userID+"/password", user, dto.ResetPasswordRequest{NewPassword: "abcdef", ConfirmPassword: "abcdeg"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "As senhas não coincidem", decode[dto.ErrorResponse](t, raw).Message)
}

func TestAPI_LoginReintentaEmailNoConfirmado(t *testing.T) {
	f := newAPIFixture(t)
	f.auth.notConfirmed = 2

	resp, raw := f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@empresa.com.br", Password: "segredo"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, 3, f.auth.attempts)

	session := decode[dto.SessionResponse](t, raw)
	assert.Equal(t, "access", session.AccessToken)
	assert.True(t, session.User.IsAdmin)
	assert.Equal(t, "Ana Admin", session.User.FullName)
	require.Len(t, f.auth.metadata, 1)
	assert.Equal(t, entity.RoleAdmin, f.auth.metadata[0].Role)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	f := newAPIFixture(t)

	resp, raw := f.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@empresa.com.br", Password: "errada"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, f.auth.attempts, "solo se reintenta ante email no confirmado")
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, raw).Code)
}

func TestAPI_DashboardYReporte(t *testing.T) {
	f := newAPIFixture(t)
	tok := tokenFor(t, userID, "user")
	f.store.SeedEquipment("Mouse", 2)
	f.store.SeedEquipment("Monitor", 0)
	f.store.SeedEquipment("Cabo", 40)

	resp, raw := f.call(t, http.MethodGet, "/api/dashboard/summary", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	sum := decode[dto.DashboardSummaryDTO](t, raw)
	assert.Equal(t, 3, sum.EquipmentCount)
	assert.Equal(t, 42, sum.TotalUnits)
	assert.Equal(t, 1, sum.OutOfStockCount)

	resp, raw = f.call(t, http.MethodGet, "/api/reports/inventory.pdf", tok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario-")
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
	assert.Equal(t, 3, f.pdf.items)
}

func TestAPI_SinToken(t *testing.T) {
	f := newAPIFixture(t)
	resp, _ := f.call(t, http.MethodGet, "/api/equipment", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
