package inventory

import (
	"fmt"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// Bucket estado de custodia física de una unidad.
type Bucket string

const (
	Available Bucket = "available"
	Reserved  Bucket = "reserved"
	OnRent    Bucket = "onRent"
	Dirty     Bucket = "dirty"
	Broken    Bucket = "broken"
)

// Buckets en orden de presentación.
var Buckets = []Bucket{Available, Reserved, OnRent, Dirty, Broken}

// transitions grafo dirigido de movimientos permitidos entre buckets.
var transitions = map[Bucket][]Bucket{
	Available: {Reserved, OnRent, Broken},
	Reserved:  {Available, OnRent},
	OnRent:    {Dirty},
	Dirty:     {Available, Broken},
	Broken:    {Available},
}

// ParseBucket valida el nombre de un bucket.
func ParseBucket(s string) (Bucket, error) {
	for _, b := range Buckets {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: bucket desconocido %q", domain.ErrInvalidInput, s)
}

// CanMove indica si el grafo permite mover unidades de from a to.
func CanMove(from, to Bucket) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Quantity saldo de un bucket.
func Quantity(s *entity.Stock, b Bucket) int {
	if p := counter(s, b); p != nil {
		return *p
	}
	return 0
}

// Move aplica en memoria un movimiento de qty unidades entre dos buckets del registro.
// Devuelve *domain.InsufficientStockError si el bucket de origen quedaría negativo.
func Move(s *entity.Stock, from, to Bucket, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if !CanMove(from, to) {
		return fmt.Errorf("%w: movimiento %s -> %s no permitido", domain.ErrInvalidInput, from, to)
	}
	src, dst := counter(s, from), counter(s, to)
	if *src < qty {
		return &domain.InsufficientStockError{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Bucket:      string(from),
			Requested:   qty,
			Available:   *src,
		}
	}
	*src -= qty
	*dst += qty
	return nil
}

// Receive suma unidades nuevas al bucket available (alta de inventario).
func Receive(s *entity.Stock, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	s.Available += qty
	return nil
}

// Retire da de baja unidades disponibles (sale del inventario).
func Retire(s *entity.Stock, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if s.Available < qty {
		return &domain.InsufficientStockError{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Bucket:      string(Available),
			Requested:   qty,
			Available:   s.Available,
		}
	}
	s.Available -= qty
	return nil
}

// Validate verifica que ningún contador sea negativo.
func Validate(s *entity.Stock) error {
	for _, b := range Buckets {
		if Quantity(s, b) < 0 {
			return fmt.Errorf("%w: bucket %s negativo para producto %s en bodega %s",
				domain.ErrLedgerInconsistency, b, s.ProductID, s.WarehouseID)
		}
	}
	return nil
}

func counter(s *entity.Stock, b Bucket) *int {
	switch b {
	case Available:
		return &s.Available
	case Reserved:
		return &s.Reserved
	case OnRent:
		return &s.OnRent
	case Dirty:
		return &s.Dirty
	case Broken:
		return &s.Broken
	}
	return nil
}

// SerialStatus estado de serial que corresponde a un bucket.
func SerialStatus(b Bucket) string {
	switch b {
	case Available:
		return entity.SerialStatusAvailable
	case Reserved:
		return entity.SerialStatusReserved
	case OnRent:
		return entity.SerialStatusOnRent
	case Dirty:
		return entity.SerialStatusDirty
	case Broken:
		return entity.SerialStatusBroken
	}
	return ""
}

// BucketOf bucket en el que está una unidad con el estado de serial dado.
func BucketOf(status string) (Bucket, bool) {
	for _, b := range Buckets {
		if SerialStatus(b) == status {
			return b, true
		}
	}
	return "", false
}
