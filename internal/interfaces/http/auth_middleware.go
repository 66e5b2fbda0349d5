package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/dto"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
	"github.com/jhoicas/Inventario-equipos/pkg/jwt"
)

// Locals keys del usuario autenticado en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalPrincipal = "principal"
)

// AuthMiddleware valida el access token emitido por el servicio de auth del backend,
// deja el principal en c.Locals y en c.UserContext() para que los adaptadores hablen
// con el backend en nombre del usuario.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Header Authorization obrigatório."})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Formato: Bearer <token>."})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Token vazio."})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "Sessão expirada. Faça login novamente."})
		}
		p := entity.Principal{
			UserID:      claims.Subject,
			Email:       claims.Email,
			Role:        entity.RoleFromClaim(claims.AppRole()),
			FullName:    claims.FullName(),
			AccessToken: tokenString,
		}
		c.Locals(LocalUserID, p.UserID)
		c.Locals(LocalRole, string(p.Role))
		c.Locals(LocalPrincipal, p)
		c.SetUserContext(entity.WithPrincipal(c.UserContext(), p))
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Usar después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Sessão expirada. Faça login novamente."})
		}
		role := entity.Role(GetRole(c))
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Você não tem permissão para acessar esta página."})
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol de la aplicación resuelto del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetPrincipal principal del llamador.
func GetPrincipal(c *fiber.Ctx) entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(entity.Principal)
	return p
}
