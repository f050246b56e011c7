package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un equipo de alquiler (multi-bodega).
// TotalOwned es la cantidad de unidades adquiridas; solo cambia vía Receive/Retire del libro de stock,
// nunca por CRUD. Invariante: TotalOwned == suma de todos los buckets en todas las bodegas.
type Product struct {
	ID          string
	Code        string // código único
	Name        string
	Category    string
	PricePerDay decimal.Decimal
	TotalOwned  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
