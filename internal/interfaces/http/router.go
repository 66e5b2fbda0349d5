package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-equipos/internal/application/analytics"
	"github.com/jhoicas/Inventario-equipos/internal/application/auth"
	"github.com/jhoicas/Inventario-equipos/internal/application/confirm"
	"github.com/jhoicas/Inventario-equipos/internal/application/inventory"
	"github.com/jhoicas/Inventario-equipos/internal/application/usecase"
	"github.com/jhoicas/Inventario-equipos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	EquipmentUC   *usecase.EquipmentUseCase
	MovementUC    *inventory.MovementUseCase
	ReductionUC   *inventory.StockReductionUseCase
	UserAdminUC   *usecase.UserAdminUseCase
	DashboardUC   *analytics.DashboardUseCase
	ReportUC      *analytics.ReportUseCase
	Confirmations *confirm.Registry
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (login y refresh públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)
	confirmations := NewConfirmationHandler(deps.Confirmations)

	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC, confirmations)
	equipment.Get("/", equipmentHandler.List)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/:id", equipmentHandler.GetByID)
	equipment.Put("/:id", equipmentHandler.Update)
	equipment.Delete("/:id", equipmentHandler.Delete)

	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReductionUC, confirmations)
	movements := protected.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Register)
	movements.Delete("/:id", movementHandler.Delete)
	protected.Post("/reductions", movementHandler.Reduce)

	// Usuarios: listado, alta y baja solo administradores; perfil y contraseña propios para todos.
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserAdminUC, confirmations)
	users.Get("/me", userHandler.Me)
	users.Get("/cooldown", adminOnly, userHandler.Cooldown)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/password", userHandler.ResetPassword)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	confirmGroup := protected.Group("/confirmations")
	confirmGroup.Get("/:id", confirmations.Get)
	confirmGroup.Post("/:id/confirm", confirmations.Confirm)
	confirmGroup.Delete("/:id", confirmations.Cancel)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
	protected.Get("/reports/inventory.pdf", dashboardHandler.InventoryPDF)
}
