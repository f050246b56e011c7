package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrOrderNotFound           = fmt.Errorf("%w: pedido", ErrNotFound)
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrConflict                = errors.New("conflicto con el estado actual")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInsufficientDirtyStock  = fmt.Errorf("%w: no hay unidades sucias suficientes", ErrInsufficientStock)
	ErrSerialUnavailable       = errors.New("serial no disponible")
	ErrSerialInUse             = errors.New("serial en uso")
	ErrInvalidStatusTransition = fmt.Errorf("%w: transición de estado no permitida", ErrConflict)
	// ErrLedgerInconsistency invariante del libro de stock violada; siempre aborta la transacción.
	ErrLedgerInconsistency = errors.New("inconsistencia en el libro de stock")
)

// InsufficientStockError detalla el faltante de un producto en una bodega.
// Available es el saldo del bucket de origen (o la disponibilidad calculada para un rango de fechas).
// Reserved solo se llena en despachos (reserved + available deben cubrir Requested).
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Bucket      string
	Requested   int
	Available   int
	Reserved    int
	Sentinel    error
}

func (e *InsufficientStockError) Error() string {
	if e.Reserved > 0 {
		return fmt.Sprintf("%s: producto %s, solicitado %d, reservado %d, disponible %d",
			e.sentinel().Error(), e.ProductID, e.Requested, e.Reserved, e.Available)
	}
	return fmt.Sprintf("%s: producto %s, solicitado %d, disponible %d",
		e.sentinel().Error(), e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return e.sentinel() }

func (e *InsufficientStockError) sentinel() error {
	if e.Sentinel != nil {
		return e.Sentinel
	}
	return ErrInsufficientStock
}

// SerialStateError el serial no está en el estado que exige la operación.
type SerialStateError struct {
	SerialID string
	Serial   string
	Status   string
	Sentinel error
}

func (e *SerialStateError) Error() string {
	return fmt.Sprintf("%s: serial %s en estado %s", e.Sentinel.Error(), e.Serial, e.Status)
}

func (e *SerialStateError) Unwrap() error { return e.Sentinel }
