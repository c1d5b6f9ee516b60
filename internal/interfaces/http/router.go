package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/cuentadante-api/internal/application/analytics"
	"github.com/jhoicas/cuentadante-api/internal/application/auth"
	"github.com/jhoicas/cuentadante-api/internal/application/receipt"
	"github.com/jhoicas/cuentadante-api/internal/application/usecase"
	"github.com/jhoicas/cuentadante-api/internal/application/workflow"
	"github.com/jhoicas/cuentadante-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	AssetUC     *usecase.AssetUseCase
	UserUC      *usecase.UserUseCase
	MovementUC  *usecase.MovementUseCase
	ReceiptUC   *receipt.UseCase
	IntakeUC    *workflow.IntakeUseCase
	ApprovalUC  *workflow.ApprovalUseCase
	CustodyUC   *workflow.CustodyUseCase
	DashboardUC *appanalytics.DashboardUseCase
	LoginLimit  *LoginLimiter // nil = sin límite
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	if deps.LoginLimit != nil {
		authGroup.Post("/login", deps.LoginLimit.Middleware(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Get("/verify", authHandler.Verify)
	authGroup.Post("/logout", authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	custodians := RequireRole(entity.RoleCuentadante, entity.RoleAdministrador)

	// Bienes
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC, deps.CustodyUC)
	assets.Get("/", assetHandler.List)
	assets.Post("/", custodians, assetHandler.Create)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id/return", custodians, assetHandler.Return)
	assets.Put("/:id/maintenance", custodians, assetHandler.Maintenance)
	assets.Put("/:id/repair", custodians, assetHandler.Repair)

	// Solicitudes: la autorización fina (rol del cuerpo vs rol del token) está en el caso de uso.
	requests := protected.Group("/requests")
	requestHandler := NewRequestHandler(deps.IntakeUC, deps.ApprovalUC)
	requests.Get("/", requestHandler.List)
	requests.Post("/", requestHandler.Create)
	requests.Get("/:id", requestHandler.GetByID)
	requests.Put("/:id/approve", requestHandler.Approve)
	requests.Put("/:id/reject", requestHandler.Reject)

	// Movimientos
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.ReceiptUC)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Get("/:id/receipt", movementHandler.Receipt)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/expiring-assets", dashboardHandler.GetExpiringAssets)

	// Usuarios
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", custodians, userHandler.List)
}
