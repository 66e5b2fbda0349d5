package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain"
)

const fallbackMessage = "Ocorreu um erro inesperado. Tente novamente."

var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrEmailNotConfirmed, fiber.StatusForbidden, "EMAIL_NOT_CONFIRMED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrBusy, fiber.StatusConflict, "BUSY"},
	{domain.ErrConfirmationClosed, fiber.StatusConflict, "CONFIRMATION_CLOSED"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrBackend, fiber.StatusBadGateway, "BACKEND_ERROR"},
}

// writeError responde con dto.ErrorResponse. Los errores crudos del backend se clasifican
// y su mensaje se traduce; el enfriamiento agrega Retry-After.
func writeError(c *fiber.Ctx, err error) error {
	var cd *domain.CooldownError
	if errors.As(err, &cd) {
		secs := cd.Seconds()
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code: "COOLDOWN", Message: cd.Error(), RetryAfter: secs,
		})
	}

	err = domain.ContextError(err, "", "", fallbackMessage)
	msg := domain.FriendlyMessage(err, fallbackMessage)
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Corpo da requisição inválido."})
}
