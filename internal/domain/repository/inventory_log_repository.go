package repository

import (
	"context"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// InventoryLogRepository puerto del log de inventario (solo inserción y consulta).
type InventoryLogRepository interface {
	Create(ctx context.Context, entry *entity.InventoryLog) error
	// ListByProduct orden cronológico inverso con paginación.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLog, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryLog, error)
	// ListAllByProduct orden cronológico, sin paginar (replay).
	ListAllByProduct(ctx context.Context, productID string) ([]*entity.InventoryLog, error)
}
