package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del diario de movimientos (protegido).
type InventoryHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockLedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (entrada|salida), quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:               mov.ID,
		ProductID:        mov.ProductID,
		Type:             mov.Type,
		Quantity:         mov.Quantity,
		Reason:           mov.Reason,
		PreviousQuantity: mov.PreviousQuantity,
		NewQuantity:      mov.NewQuantity,
		CreatedAt:        mov.CreatedAt,
	})
}

// RegisterMovementBatch godoc
// @Summary      Registrar varios movimientos en una sola transacción
// @Description  O se aplican todos los ítems o ninguno (ventas rápidas multi-ítem).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementBatchRequest  true  "items"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/batch [post]
func (h *InventoryHandler) RegisterMovementBatch(c *fiber.Ctx) error {
	var in dto.RegisterMovementBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inputs := make([]inventory.MovementInput, 0, len(in.Items))
	for _, item := range in.Items {
		inputs = append(inputs, inventory.MovementInput{
			ProductID: item.ProductID,
			Type:      item.Type,
			Quantity:  item.Quantity,
			Reason:    item.Reason,
		})
	}
	movements, err := h.uc.RegisterMovementBatch(c.Context(), inputs)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, mov := range movements {
		out = append(out, dto.MovementResponse{
			ID:               mov.ID,
			ProductID:        mov.ProductID,
			Type:             mov.Type,
			Quantity:         mov.Quantity,
			Reason:           mov.Reason,
			PreviousQuantity: mov.PreviousQuantity,
			NewQuantity:      mov.NewQuantity,
			CreatedAt:        mov.CreatedAt,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Consultar el diario de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Tamaño de página"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListMovements(c.Context(), c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, mov := range movements {
		out = append(out, dto.MovementResponse{
			ID:               mov.ID,
			ProductID:        mov.ProductID,
			Type:             mov.Type,
			Quantity:         mov.Quantity,
			Reason:           mov.Reason,
			PreviousQuantity: mov.PreviousQuantity,
			NewQuantity:      mov.NewQuantity,
			CreatedAt:        mov.CreatedAt,
		})
	}
	return c.JSON(out)
}

// PurgeJournal godoc
// @Summary      Purga administrativa del diario de movimientos
// @Tags         inventory
// @Security     Bearer
// @Success      204  "sin contenido"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [delete]
func (h *InventoryHandler) PurgeJournal(c *fiber.Ctx) error {
	if err := h.uc.PurgeJournal(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
