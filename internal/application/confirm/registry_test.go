package confirm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

func TestRegistry_ConfirmaYDescarta(t *testing.T) {
	r := NewRegistry(time.Minute)
	runs := 0
	p, err := r.Open("user-1", Prompt{Title: "Excluir"}, func(context.Context) error { runs++; return nil }, "ok")
	require.NoError(t, err)

	_, err = r.Confirm(context.Background(), "user-2", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro usuario no puede confirmar")

	got, err := r.Confirm(context.Background(), "user-1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
	assert.False(t, got.Dialog.IsOpen())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_FalloDejaAbierto(t *testing.T) {
	r := NewRegistry(time.Minute)
	p, err := r.Open("user-1", Prompt{Title: "Excluir"}, func(context.Context) error { return errors.New("permission denied") }, "")
	require.NoError(t, err)

	got, err := r.Confirm(context.Background(), "user-1", p.ID)
	assert.EqualError(t, err, "permission denied")
	assert.True(t, got.Dialog.IsOpen())
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.Cancel("user-1", p.ID))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Vencimiento(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegistry(5 * time.Minute)
	r.now = func() time.Time { return now }
	p, err := r.Open("user-1", Prompt{Title: "Excluir"}, func(context.Context) error { return nil }, "")
	require.NoError(t, err)

	now = now.Add(6 * time.Minute)
	_, err = r.Get("user-1", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
