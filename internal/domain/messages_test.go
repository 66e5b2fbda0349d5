package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

func TestFriendlyMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"dominio", domain.Validation("Equipamento não encontrado."), "Equipamento não encontrado."},
		{"duplicado", errors.New(`duplicate key value violates unique constraint "profiles_email_key"`), "Este registro já existe."},
		{"permiso", errors.New("permission denied for table equipment"), "Você não tem permissão para realizar esta operação."},
		{"password", errors.New("Weak password: too short"), "A senha deve ter no mínimo 6 caracteres."},
		{"credenciales", errors.New("Invalid login credentials"), "Email ou senha inválidos."},
		{"desconocido", errors.New("boom"), "boom"},
		{"vacío", errors.New(" "), "Erro inesperado."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.FriendlyMessage(tc.err, "Erro inesperado."))
		})
	}
}

func TestContextMessage_Duplicado(t *testing.T) {
	err := fmt.Errorf("rpc: %w", errors.New("duplicate key value"))
	assert.Equal(t, "Este email já está registrado.",
		domain.ContextMessage(err, "Este email já está registrado.", "", "Erro ao adicionar usuário."))
}

func TestError_UnwrapKindYCausa(t *testing.T) {
	cause := errors.New("backend caído")
	err := domain.Wrap(domain.ErrConflict, "Falha ao salvar.", cause)

	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Falha ao salvar.", err.Error())
}

func TestContextError_ClasificaYConservaCausa(t *testing.T) {
	cause := errors.New("permission denied for function create_user_profile")
	err := domain.ContextError(cause, "Este email já está registrado.", "Você não tem permissão para criar usuários.", "Erro ao adicionar usuário.")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "Você não tem permissão para criar usuários.")

	assert.ErrorIs(t, domain.ContextError(errors.New("timeout"), "", "", "x"), domain.ErrBackend)
	assert.Nil(t, domain.ContextError(nil, "", "", ""))
}

func TestCooldownError(t *testing.T) {
	err := &domain.CooldownError{Remaining: 4200 * time.Millisecond}
	assert.ErrorIs(t, err, domain.ErrCooldown)
	assert.Equal(t, 5, err.Seconds())
	assert.EqualError(t, err, "Aguarde 5 segundos antes de criar outro usuário.")
}
