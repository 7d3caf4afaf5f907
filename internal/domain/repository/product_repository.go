package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El catálogo (nombre, categoría, imagen) lo administra otro sistema; aquí
// solo se lee el producto y se muta su cantidad dentro de transacciones.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) durante
	// la secuencia leer-verificar-escribir de stock.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateQuantity(productID string, quantity int64) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
}
