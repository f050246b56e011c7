package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/usecase"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/memory"
)

func TestProductUseCase_CodigoUnico(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewProductUseCase(memory.New().Repos().Products)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: "CAM-4K", Name: "Cámara 4K", PricePerDay: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.Zero(t, p.TotalOwned)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Code: "CAM-4K", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_UpdateNoTocaTotalOwned(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repo := store.Repos().Products
	uc := usecase.NewProductUseCase(repo)
	p, err := uc.Create(ctx, dto.CreateProductRequest{Code: "TRI", Name: "Trípode"})
	require.NoError(t, err)
	require.NoError(t, repo.AdjustTotalOwned(ctx, p.ID, 4))

	name := "Trípode pesado"
	price := decimal.NewFromInt(15)
	updated, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, PricePerDay: &price})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 4, updated.TotalOwned)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{PricePerDay: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseUseCase_CrearYListar(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWarehouseUseCase(memory.New().Repos().Warehouses)

	_, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Centro"})
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Centro", list.Items[0].Name)
	assert.Equal(t, 20, list.Page.Limit)
}
