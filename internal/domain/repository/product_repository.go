package repository

import (
	"context"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto; serializa los chequeos de disponibilidad.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AdjustTotalOwned suma delta a total_owned (altas y bajas de unidades).
	AdjustTotalOwned(ctx context.Context, id string, delta int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
