package inventory

import "github.com/jhoicas/rental-inventory-api/internal/domain/entity"

// Replay reconstruye los saldos por bucket a partir de entradas del log (en cualquier orden).
// Las entradas sin bucket de origen son altas; sin bucket de destino, bajas.
func Replay(productID string, entries []*entity.InventoryLog) map[Bucket]int {
	totals := make(map[Bucket]int, len(Buckets))
	for _, b := range Buckets {
		totals[b] = 0
	}
	for _, e := range entries {
		if e.ProductID != productID {
			continue
		}
		if e.FromBucket != "" {
			totals[Bucket(e.FromBucket)] -= e.Quantity
		}
		if e.ToBucket != "" {
			totals[Bucket(e.ToBucket)] += e.Quantity
		}
	}
	return totals
}
