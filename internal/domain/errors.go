package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrCustomerNotFound  = errors.New("cliente no encontrado")
	ErrSaleNotFound      = errors.New("venta fiada no encontrada")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrEmptyReason       = errors.New("el motivo del movimiento es obligatorio")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrOffline           = errors.New("sin conexión con el almacén de datos")
	ErrInconsistency     = errors.New("los agregados no cuadran con sus componentes")
)
