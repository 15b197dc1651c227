package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrSaleNotFound       = errors.New("venta no encontrada")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ErrInsufficientStock sentinel para comparar con errors.Is.
// El error concreto siempre es un *InsufficientStockError con el producto afectado.
var ErrInsufficientStock = errors.New("stock insuficiente")

// InsufficientStockError indica que el stock disponible no alcanza la cantidad
// solicitada de un producto, o que la venta rompería el stock mínimo.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s", e.ProductID)
}

// Is permite usar errors.Is(err, ErrInsufficientStock) con el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStockError construye el error nombrando el producto que falló.
func NewInsufficientStockError(productID string) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID}
}
