package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
)

// MovementHandler ledger de movimientos y baja de stock.
type MovementHandler struct {
	movements *inventory.MovementUseCase
	reduction *inventory.StockReductionUseCase
	confirms  *ConfirmationHandler
}

// NewMovementHandler construye el handler.
func NewMovementHandler(movements *inventory.MovementUseCase, reduction *inventory.StockReductionUseCase, confirms *ConfirmationHandler) *MovementHandler {
	return &MovementHandler{movements: movements, reduction: reduction, confirms: confirms}
}

// List godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero; q filtra por nombre del equipo, tipo o descripción.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Busca"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, err := h.movements.List(c.UserContext(), q.Search)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Register godoc
// @Summary      Registrar movimiento
// @Description  Agrega una fila al ledger; no modifica la cantidad del equipo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "equipment_id, quantity, type (in|out), description"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Pedir la eliminación de un movimiento
// @Description  Abre una confirmación; borrar un movimiento no revierte la cantidad del equipo.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      202  {object}  dto.ConfirmationView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	m, err := h.movements.Find(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	id := m.ID
	return h.confirms.open(c, confirm.Prompt{
		Title:        "Confirmar Exclusão",
		Message:      fmt.Sprintf("Tem certeza que deseja deletar a movimentação do equipamento %q?", m.EquipmentName),
		Kind:         confirm.KindDanger,
		ConfirmLabel: "Deletar",
	}, func(ctx context.Context) error {
		return h.movements.Delete(ctx, id)
	}, "Movimentação deletada com sucesso.")
}

// Reduce godoc
// @Summary      Baja de stock
// @Description  Registra un movimiento "out" contra un chamado y descuenta la cantidad del equipo.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockReductionRequest  true  "equipment_id, quantity, ticket_number, observation"
// @Success      201   {object}  dto.StockReductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reductions [post]
func (h *MovementHandler) Reduce(c *fiber.Ctx) error {
	var in dto.StockReductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	list, err := h.reduction.Reduce(c.UserContext(), inventory.ReductionInput{
		EquipmentID:  in.EquipmentID,
		Quantity:     in.Quantity,
		TicketNumber: in.TicketNumber,
		Observation:  in.Observation,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockReductionResponse{
		Message:   "Baixa registrada com sucesso!",
		Equipment: inventory.ToEquipmentResponses(list),
	})
}
