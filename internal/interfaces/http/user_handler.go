package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
)

// UserHandler administración de usuarios y perfil propio.
type UserHandler struct {
	uc       *usecase.UserAdminUseCase
	confirms *ConfirmationHandler
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserAdminUseCase, confirms *ConfirmationHandler) *UserHandler {
	return &UserHandler{uc: uc, confirms: confirms}
}

// List godoc
// @Summary      Listar usuarios (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Busca por nome, email ou perfil"
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	list, err := h.uc.List(c.UserContext(), GetPrincipal(c), q.Search)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Me godoc
// @Summary      Perfil propio
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario (admin)
// @Description  Tras cada intento que llega al backend se abre un enfriamiento por administrador (429 + Retry-After).
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "email, password, full_name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cooldown godoc
// @Summary      Estado del enfriamiento de altas
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CooldownResponse
// @Router       /api/users/cooldown [get]
func (h *UserHandler) Cooldown(c *fiber.Ctx) error {
	return c.JSON(h.uc.CreateCooldown(GetPrincipal(c)))
}

// Update godoc
// @Summary      Editar perfil
// @Description  Administradores editan nombre y rol de cualquiera; el resto solo su propio nombre.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.UpdateProfileRequest  true  "full_name, role"
// @Success      200   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Cambiar contraseña
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID"
// @Param        body  body  dto.ResetPasswordRequest  true  "new_password, confirm_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/password [put]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ResetPassword(c.UserContext(), GetPrincipal(c), c.Params("id"), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Senha atualizada com sucesso!"})
}

// Delete godoc
// @Summary      Pedir la eliminación de un usuario (admin)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      202  {object}  dto.ConfirmationView
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	caller := GetPrincipal(c)
	u, err := h.uc.Get(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	id := u.ID
	return h.confirms.open(c, confirm.Prompt{
		Title:        "Confirmar Exclusão",
		Message:      fmt.Sprintf("Tem certeza que deseja deletar o usuário %q? Esta ação não pode ser desfeita.", u.DisplayName),
		Kind:         confirm.KindDanger,
		ConfirmLabel: "Deletar",
	}, func(ctx context.Context) error {
		return h.uc.Delete(ctx, caller, id)
	}, "Usuário deletado com sucesso!")
}
