package entity

import "time"

// Stock contadores por producto y bodega. Cada unidad está en exactamente un bucket.
// Los contadores solo cambian por movimientos entre dos buckets (ver domain/inventory).
type Stock struct {
	ProductID   string
	WarehouseID string
	Available   int
	Reserved    int
	OnRent      int
	Dirty       int
	Broken      int
	UpdatedAt   time.Time
}

// Total suma los cinco buckets.
func (s *Stock) Total() int {
	return s.Available + s.Reserved + s.OnRent + s.Dirty + s.Broken
}

// Usable excluye las unidades dañadas (broken).
func (s *Stock) Usable() int {
	return s.Available + s.Reserved + s.OnRent + s.Dirty
}
