package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
)

// ConfirmationHandler confirmaciones pendientes de acciones destructivas.
// DELETE sobre un recurso abre una confirmación (202); la acción corre recién en
// POST /api/confirmations/:id/confirm.
type ConfirmationHandler struct {
	registry *confirm.Registry
}

// NewConfirmationHandler construye el handler.
func NewConfirmationHandler(registry *confirm.Registry) *ConfirmationHandler {
	return &ConfirmationHandler{registry: registry}
}

// open registra la confirmación para el llamador y responde 202 con el diálogo.
func (h *ConfirmationHandler) open(c *fiber.Ctx, p confirm.Prompt, action confirm.Action, success string) error {
	pending, err := h.registry.Open(GetUserID(c), p, action, success)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(toConfirmationView(pending))
}

// Get godoc
// @Summary      Ver confirmación pendiente
// @Tags         confirmations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ConfirmationView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/confirmations/{id} [get]
func (h *ConfirmationHandler) Get(c *fiber.Ctx) error {
	p, err := h.registry.Get(GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toConfirmationView(p))
}

// Confirm godoc
// @Summary      Confirmar y ejecutar la acción
// @Description  Mientras la acción corre la confirmación queda ocupada (409 BUSY).
// @Description  Si la acción falla la confirmación sigue abierta.
// @Tags         confirmations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ConfirmationResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/confirmations/{id}/confirm [post]
func (h *ConfirmationHandler) Confirm(c *fiber.Ctx) error {
	p, err := h.registry.Confirm(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ConfirmationResult{Message: p.Success, View: toConfirmationView(p)})
}

// Cancel godoc
// @Summary      Cancelar confirmación
// @Tags         confirmations
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/confirmations/{id} [delete]
func (h *ConfirmationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.registry.Cancel(GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toConfirmationView(p *confirm.Pending) dto.ConfirmationView {
	v := p.Dialog.View()
	expires := p.ExpiresAt
	return dto.ConfirmationView{
		ID:             p.ID,
		Open:           v.Open,
		Title:          v.Title,
		Message:        v.Message,
		Kind:           string(v.Kind),
		Icon:           v.Icon,
		ButtonStyle:    v.ButtonStyle,
		ConfirmLabel:   v.ConfirmLabel,
		CancelLabel:    v.CancelLabel,
		Busy:           v.Busy,
		ConfirmEnabled: v.ConfirmEnabled,
		CancelEnabled:  v.CancelEnabled,
		ExpiresAt:      &expires,
	}
}
