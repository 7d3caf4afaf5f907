package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/credit"
	"github.com/tu-usuario/fiado-ledger/internal/application/inventory"
	"github.com/tu-usuario/fiado-ledger/internal/application/reconciliation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockLedgerUC    *inventory.StockLedgerUseCase
	CreditSaleUC     *credit.CreditSaleUseCase
	CustomerUC       *credit.CustomerUseCase
	ReconciliationUC *reconciliation.ReconciliationUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Diario de movimientos (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedgerUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/movements/batch", inventoryHandler.RegisterMovementBatch)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	// La purga del diario es solo para administradores
	invGroup.Delete("/movements", RequireRole("admin"), inventoryHandler.PurgeJournal)

	reconciliationHandler := NewReconciliationHandler(deps.ReconciliationUC)
	invGroup.Get("/low-stock", reconciliationHandler.LowStock)

	// Vista de producto del libro (protegido)
	protected.Get("/products/:id", reconciliationHandler.GetProduct)

	// Clientes de fiado (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.CreditSaleUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/sales/open", reconciliationHandler.GetOpenSales)
	customers.Get("/:id/history", reconciliationHandler.GetHistory)

	// Ventas fiadas y abonos (protegido)
	creditGroup := protected.Group("/credit")
	creditHandler := NewCreditHandler(deps.CreditSaleUC)
	creditGroup.Post("/sales", creditHandler.CreateSale)
	creditGroup.Get("/sales/:id", creditHandler.GetSale)
	creditGroup.Post("/sales/:id/payments", creditHandler.MarkPaid)

	// Diagnóstico de conciliación (protegido)
	protected.Get("/reconciliation", reconciliationHandler.Verify)
}
