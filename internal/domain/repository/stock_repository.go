package repository

import (
	"context"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

// StockRepository puerto de los contadores por bucket (producto + bodega).
// Es el único acceso de escritura a las filas de stock: no existe un "set" absoluto,
// solo movimientos entre dos buckets y altas/bajas contra available.
type StockRepository interface {
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si no existe devuelve un registro en cero.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Stock, error)
	// ApplyMove resta qty de from y suma qty en to. Si from no alcanza devuelve domain.ErrLedgerInconsistency.
	ApplyMove(ctx context.Context, productID, warehouseID string, from, to inventory.Bucket, qty int) error
	// AddAvailable alta de unidades nuevas (crea la fila si no existe).
	AddAvailable(ctx context.Context, productID, warehouseID string, qty int) error
	// RemoveAvailable baja de unidades disponibles.
	RemoveAvailable(ctx context.Context, productID, warehouseID string, qty int) error
}
