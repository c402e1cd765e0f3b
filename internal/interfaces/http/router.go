package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC     *usecase.ItemUseCase
	StoreUC    *usecase.StoreUseCase
	ActivityUC *usecase.ActivityLogger
	SaleUC     *inventory.SaleUseCase
	POUC       *inventory.PurchaseOrderUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Búsqueda: auth propia para mantener el envelope {error, results, count}.
	searchHandler := NewSearchHandler(deps.ItemUC, deps.JWTSecret)
	api.Get("/search", searchHandler.Search)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Update)
	items.Put("/:id/category", itemHandler.ReplaceCategory)
	items.Delete("/:id", itemHandler.Delete)

	// Stores (protegido, solo admins)
	stores := protected.Group("/stores", RequireRole(RoleAdmin))
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Get("/", storeHandler.List)
	stores.Post("/", storeHandler.Create)
	stores.Put("/:id", storeHandler.Rename)
	stores.Post("/:id/archive", storeHandler.Archive)
	stores.Delete("/:id", storeHandler.Delete)

	// Transactions (protegido)
	transactions := protected.Group("/transactions")
	saleHandler := NewSaleHandler(deps.SaleUC)
	transactions.Post("/", saleHandler.Register)
	transactions.Get("/", saleHandler.List)
	transactions.Get("/:id", saleHandler.Get)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.POUC)
	orders.Post("/", poHandler.Create)
	orders.Get("/", poHandler.List)
	orders.Get("/:id", poHandler.Get)
	orders.Put("/:id", poHandler.Update)
	orders.Post("/:id/cancel", poHandler.Cancel)
	orders.Post("/:id/receive", poHandler.Receive)

	// Activities (protegido, solo lectura)
	activities := protected.Group("/activities")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Get("/", activityHandler.List)
}
