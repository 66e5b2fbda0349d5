package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/internal/infrastructure/memory"
)

func newReduction(store *memory.Store) *inventory.StockReductionUseCase {
	return inventory.NewStockReductionUseCase(store.TxRunner(), store.Equipment(), zerolog.Nop())
}

func TestReduce_DescuentaYCreaUnMovimientoOut(t *testing.T) {
	store := memory.NewStore()
	id := store.SeedEquipment("Furadeira", 10)
	other := store.SeedEquipment("Notebook", 4)

	list, err := newReduction(store).Reduce(context.Background(), inventory.ReductionInput{
		EquipmentID: id, Quantity: 3, TicketNumber: "4521", Observation: "Troca de peça",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, store.Quantity(id))
	assert.Equal(t, 4, store.Quantity(other))
	movs := store.MovementsOf(id)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementOut, movs[0].Type)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, "Chamado: 4521. Troca de peça", *movs[0].Description)

	require.Len(t, list, 2, "devuelve la lista recargada")
	assert.Equal(t, "Furadeira", list[0].Name)
	assert.Equal(t, 7, list[0].Quantity)
}

func TestReduce_SinChamadoUsaSoloObservacion(t *testing.T) {
	store := memory.NewStore()
	id := store.SeedEquipment("Monitor", 2)

	_, err := newReduction(store).Reduce(context.Background(), inventory.ReductionInput{EquipmentID: id, Quantity: 2, Observation: "Descarte"})

	require.NoError(t, err)
	assert.Equal(t, 0, store.Quantity(id))
	assert.Equal(t, "Descarte", *store.MovementsOf(id)[0].Description)
}

func TestReduce_Rechazos(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		missing  bool
		wantKind error
		wantMsg  string
	}{
		{"cantidad mayor al stock", 11, false, domain.ErrInsufficientStock, "Quantidade insuficiente em estoque. Disponível: 10"},
		{"cantidad cero", 0, false, domain.ErrInvalidInput, "Equipamento e quantidade válidos são obrigatórios."},
		{"cantidad negativa", -2, false, domain.ErrInvalidInput, "Equipamento e quantidade válidos são obrigatórios."},
		{"equipo inexistente", 1, true, domain.ErrNotFound, "Equipamento não encontrado."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memory.NewStore()
			id := store.SeedEquipment("Furadeira", 10)
			target := id
			if tc.missing {
				target = "00000000-0000-0000-0000-000000000000"
			}

			_, err := newReduction(store).Reduce(context.Background(), inventory.ReductionInput{EquipmentID: target, Quantity: tc.quantity})

			assert.ErrorIs(t, err, tc.wantKind)
			assert.EqualError(t, err, tc.wantMsg)
			assert.Equal(t, 10, store.Quantity(id))
			assert.Empty(t, store.MovementsOf(id))
			assert.NotContains(t, store.Calls(), "movements.create")
		})
	}
}

func TestReduce_ReleeLaCantidadAntesDeEscribir(t *testing.T) {
	store := memory.NewStore()
	id := store.SeedEquipment("Furadeira", 10)
	uc := newReduction(store)

	_, err := uc.Reduce(context.Background(), inventory.ReductionInput{EquipmentID: id, Quantity: 4})
	require.NoError(t, err)

	calls := store.Calls()
	assert.Equal(t, []string{
		"equipment.get",
		"movements.create",
		"equipment.get_for_update",
		"equipment.update_quantity",
		"equipment.list",
	}, calls)
}

func TestReduce_FalloAlActualizarDejaElMovimiento(t *testing.T) {
	store := memory.NewStore()
	id := store.SeedEquipment("Furadeira", 10)
	store.FailOn("equipment.update_quantity", errors.New("permission denied for table equipment"))

	_, err := newReduction(store).Reduce(context.Background(), inventory.ReductionInput{EquipmentID: id, Quantity: 4})

	assert.EqualError(t, err, "permission denied for table equipment")
	assert.Equal(t, 10, store.Quantity(id))
	assert.Len(t, store.MovementsOf(id), 1, "sin transacción no hay compensación")
}

func TestReductionInput_Description(t *testing.T) {
	assert.Equal(t, "Chamado: 77. ", inventory.ReductionInput{TicketNumber: "77"}.Description())
	assert.Equal(t, "obs", inventory.ReductionInput{Observation: " obs "}.Description())
	assert.Equal(t, "", inventory.ReductionInput{}.Description())
}
