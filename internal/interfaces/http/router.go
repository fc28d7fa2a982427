package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/invorya/stock-recon/internal/application/analytics"
	"github.com/invorya/stock-recon/internal/application/auth"
	"github.com/invorya/stock-recon/internal/application/reconcile"
	"github.com/invorya/stock-recon/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	StockSvc    *reconcile.Service
	StockReader *reconcile.Reader
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Las lecturas quedan abiertas a
// cualquier usuario autenticado; las escrituras de catálogo y de stock
// exigen admin o bodeguero, y los borrados solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	canWrite := RequireRole("admin", "bodeguero")
	adminOnly := RequireRole("admin")

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", canWrite, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", canWrite, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", canWrite, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", canWrite, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock por bodega (protegido, cuelga de products)
	stockHandler := NewStockHandler(deps.StockSvc, deps.StockReader, deps.WarehouseUC, deps.ProductUC)
	products.Put("/:id/stock", canWrite, stockHandler.Save)
	products.Get("/:id/stock", stockHandler.Read)
	products.Get("/:id/stock/report", stockHandler.Report)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
