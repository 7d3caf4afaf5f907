package ports

import (
	"context"

	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// ProductCache define el puerto de salida para la caché read-through de productos.
// La caché nunca es autoritativa: toda mutación exitosa que toque un producto
// debe invalidar su entrada, y las verificaciones de invariantes la ignoran.
type ProductCache interface {
	// Get devuelve el producto cacheado o (nil, nil) en miss.
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product) error
	Invalidate(ctx context.Context, productIDs ...string) error
}
