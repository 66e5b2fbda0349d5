package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
)

// EquipmentHandler catálogo de equipos.
type EquipmentHandler struct {
	uc       *usecase.EquipmentUseCase
	confirms *ConfirmationHandler
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *usecase.EquipmentUseCase, confirms *ConfirmationHandler) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, confirms: confirms}
}

// List godoc
// @Summary      Listar equipos
// @Description  Ordenados por nombre; q filtra por nombre, descripción, categoría, local o status.
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Busca"
// @Success      200  {array}   dto.EquipmentResponse
// @Router       /api/equipment [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(c.UserContext(), q.Search)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener equipo
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear equipo
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EquipmentRequest  true  "Equipo"
// @Success      201   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/equipment [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar equipo
// @Tags         equipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.EquipmentRequest  true  "Equipo"
// @Success      200   {object}  dto.EquipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.EquipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Pedir la eliminación de un equipo
// @Description  Abre una confirmación. Al confirmarse se borran los movimientos del equipo y luego el equipo;
// @Description  el rol del llamador se vuelve a leer de su perfil justo antes.
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      202  {object}  dto.ConfirmationView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	caller := GetPrincipal(c)
	e, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	id := e.ID
	return h.confirms.open(c, confirm.Prompt{
		Title:        "Confirmar Exclusão",
		Message:      fmt.Sprintf("Tem certeza que deseja deletar o equipamento %q? Esta ação não pode ser desfeita.", e.Name),
		Kind:         confirm.KindDanger,
		ConfirmLabel: "Deletar",
	}, func(ctx context.Context) error {
		return h.uc.Delete(ctx, caller, id)
	}, "Equipamento excluído com sucesso!")
}
