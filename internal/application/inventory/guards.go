package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// LockProduct bloquea la fila del producto. Todas las operaciones que consultan disponibilidad o
// mueven stock de un producto pasan por aquí primero, así quedan serializadas por producto.
func LockProduct(ctx context.Context, repos Repos, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	p, err := repos.Products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return p, nil
}

// RequireWarehouse valida que la bodega exista.
func RequireWarehouse(ctx context.Context, repos Repos, warehouseID string) error {
	if warehouseID == "" {
		return fmt.Errorf("%w: warehouse_id requerido", domain.ErrInvalidInput)
	}
	w, err := repos.Warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: bodega %s", domain.ErrNotFound, warehouseID)
	}
	return nil
}

func requirePositive(qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	return nil
}

func warehouseOr(id, fallback string) string {
	if id != "" {
		return id
	}
	return fallback
}
