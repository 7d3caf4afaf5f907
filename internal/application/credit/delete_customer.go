package credit

import (
	"context"

	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// DeleteCustomer borra al cliente con todo su fiado en cascada, en el orden que
// exigen las referencias: renglones -> abonos -> ventas -> cliente. Una sola
// transacción: si algo falla a mitad de camino no se elimina ninguna fila.
func (uc *CreditSaleUseCase) DeleteCustomer(ctx context.Context, customerID string) error {
	if !uc.connectivity.Connected() {
		return domain.ErrOffline
	}
	if customerID == "" {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.RunCredit(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.CreditSaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		customer, err := customerRepo.GetForUpdate(customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}
		if err := saleRepo.DeleteLineItemsByCustomer(customerID); err != nil {
			return err
		}
		if err := paymentRepo.DeleteByCustomer(customerID); err != nil {
			return err
		}
		if err := saleRepo.DeleteByCustomer(customerID); err != nil {
			return err
		}
		return customerRepo.Delete(customerID)
	})
}
