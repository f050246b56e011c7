package inventory

import (
	"context"

	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción (o al pool, para lecturas fuera de tx).
type Repos struct {
	Stock      repository.StockRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Serials    repository.SerialRepository
	Orders     repository.OrderRepository
	Logs       repository.InventoryLogRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback: ningún movimiento parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
