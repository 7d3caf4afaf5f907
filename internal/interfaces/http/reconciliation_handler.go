package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/reconciliation"
)

// ReconciliationHandler expone las consultas de solo lectura y el diagnóstico
// de invariantes (protegido).
type ReconciliationHandler struct {
	uc *reconciliation.ReconciliationUseCase
}

// NewReconciliationHandler construye el handler.
func NewReconciliationHandler(uc *reconciliation.ReconciliationUseCase) *ReconciliationHandler {
	return &ReconciliationHandler{uc: uc}
}

// GetProduct godoc
// @Summary      Vista del producto que posee el libro (cantidad y precios)
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ReconciliationHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// GetOpenSales godoc
// @Summary      Ventas con saldo pendiente de un cliente
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}   dto.CreditSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/sales/open [get]
func (h *ReconciliationHandler) GetOpenSales(c *fiber.Ctx) error {
	sales, err := h.uc.GetOpenSalesForCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GetHistory godoc
// @Summary      Historial completo de fiado de un cliente
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/history [get]
func (h *ReconciliationHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.uc.GetFullHistoryForCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// LowStock godoc
// @Summary      Productos en o por debajo de su stock mínimo
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventory/low-stock [get]
func (h *ReconciliationHandler) LowStock(c *fiber.Ctx) error {
	alerts, err := h.uc.LowStockAlerts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(alerts)
}

// Verify godoc
// @Summary      Diagnóstico de invariantes
// @Description  Recalcula cada agregado desde sus componentes y reporta discrepancias. No usar en rutas calientes.
// @Tags         reconciliation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationReport
// @Router       /api/reconciliation [get]
func (h *ReconciliationHandler) Verify(c *fiber.Ctx) error {
	report, err := h.uc.VerifyInvariants(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
