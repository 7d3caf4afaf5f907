package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// MovementRepository define el puerto para el diario append-only de movimientos.
// No hay Update ni Delete individual: solo la purga administrativa masiva.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	List(limit, offset int) ([]*entity.Movement, error)
	PurgeAll() error
}
