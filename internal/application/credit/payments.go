package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// MarkLineItemsPaid liquida renglones de una venta fiada. IDs inexistentes o ya
// pagados se ignoran: reenviar la misma liquidación es un no-op, nunca se
// descuenta dos veces. El decremento del saldo de la venta, el del cliente y el
// registro del abono confirman como un solo paso atómico; si no hay nada nuevo
// que liquidar no se escribe ningún Payment.
func (uc *CreditSaleUseCase) MarkLineItemsPaid(ctx context.Context, saleID string, lineItemIDs []string) (*dto.MarkPaidResponse, error) {
	if !uc.connectivity.Connected() {
		return nil, domain.ErrOffline
	}
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	requested := make(map[string]bool, len(lineItemIDs))
	for _, id := range lineItemIDs {
		requested[id] = true
	}

	resp := &dto.MarkPaidResponse{AmountSettled: decimal.Zero}
	err := uc.txRunner.RunCredit(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.CreditSaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		// Bloquea la cabecera: dos liquidaciones concurrentes del mismo renglón
		// se serializan aquí
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}

		lines, err := saleRepo.ListLineItems(saleID)
		if err != nil {
			return err
		}
		amount := decimal.Zero
		for _, line := range lines {
			if !requested[line.ID] || line.Paid {
				continue
			}
			if err := saleRepo.MarkLineItemPaid(line.ID, now); err != nil {
				return err
			}
			amount = amount.Add(line.Subtotal)
		}
		if amount.IsZero() {
			// Nada nuevo que liquidar: resultado válido, sin Payment ni ajustes
			return nil
		}

		if err := saleRepo.AdjustOutstanding(saleID, amount.Neg()); err != nil {
			return err
		}
		if err := customerRepo.AdjustBalance(sale.CustomerID, amount.Neg()); err != nil {
			return err
		}
		payment := &entity.Payment{
			ID:         uuid.New().String(),
			CustomerID: sale.CustomerID,
			SaleID:     saleID,
			Amount:     amount,
			CreatedAt:  now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		resp.AmountSettled = amount
		resp.PaymentID = payment.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
