package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/credit"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
)

// CreditHandler maneja las peticiones HTTP de ventas fiadas y abonos (protegido).
type CreditHandler struct {
	uc *credit.CreditSaleUseCase
}

// NewCreditHandler construye el handler.
func NewCreditHandler(uc *credit.CreditSaleUseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// CreateSale godoc
// @Summary      Crear una venta fiada
// @Description  Descuenta stock por renglón y suma el total al saldo del cliente, todo en una transacción.
// @Tags         credit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCreditSaleRequest  true  "customer_id e items"
// @Success      201   {object}  dto.CreditSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/credit/sales [post]
func (h *CreditHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateCreditSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateCreditSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetSale godoc
// @Summary      Consultar una venta fiada con sus renglones
// @Tags         credit
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.CreditSaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/credit/sales/{id} [get]
func (h *CreditHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// MarkPaid godoc
// @Summary      Liquidar renglones de una venta fiada
// @Description  Idempotente: IDs ya pagados o inexistentes se ignoran; sin nada nuevo que liquidar no se registra abono.
// @Tags         credit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la venta"
// @Param        body  body  dto.MarkPaidRequest true  "line_item_ids"
// @Success      200   {object}  dto.MarkPaidResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/credit/sales/{id}/payments [post]
func (h *CreditHandler) MarkPaid(c *fiber.Ctx) error {
	var in dto.MarkPaidRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.MarkLineItemsPaid(c.Context(), c.Params("id"), in.LineItemIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
