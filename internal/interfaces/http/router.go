package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-ledger/internal/application/auth"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthSvc   *auth.Service
	Hub       *Hub
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthSvc, deps.Hub, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sync explícito
	syncHandler := NewSyncHandler(deps.Hub)
	protected.Post("/sync", syncHandler.Run)

	// Catálogo y maestros. Los deletes son solo admin; el resto lo puede
	// operar el cajero.
	catalogHandler := NewCatalogHandler(deps.Hub)
	adminOnly := RequireRole("admin")

	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", adminOnly, catalogHandler.DeleteCategory)

	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Put("/:id", catalogHandler.UpdateProduct)
	products.Delete("/:id", adminOnly, catalogHandler.DeleteProduct)

	variants := protected.Group("/variants")
	variants.Post("/", catalogHandler.CreateVariant)
	variants.Get("/", catalogHandler.ListVariants)
	variants.Put("/:id", catalogHandler.UpdateVariant)
	variants.Delete("/:id", adminOnly, catalogHandler.DeleteVariant)

	customers := protected.Group("/customers")
	customers.Post("/", catalogHandler.CreateCustomer)
	customers.Get("/", catalogHandler.ListCustomers)
	customers.Put("/:id", catalogHandler.UpdateCustomer)
	customers.Delete("/:id", adminOnly, catalogHandler.DeleteCustomer)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Put("/:id", catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", adminOnly, catalogHandler.DeleteSupplier)

	// Pipeline de mutaciones
	posHandler := NewPosHandler(deps.Hub)
	posGroup := protected.Group("/pos")
	posGroup.Post("/intakes", posHandler.Intake)
	posGroup.Post("/sales", posHandler.Sale)
	posGroup.Post("/returns", posHandler.Return)
	posGroup.Post("/settlements", posHandler.Settlement)

	// Proyección de stock
	stockHandler := NewStockHandler(deps.Hub)
	stock := protected.Group("/stock")
	stock.Get("/", stockHandler.Resolved)
	stock.Get("/low", stockHandler.Low)
	stock.Get("/lookup", stockHandler.Lookup)
}
