package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.Repos().Products.Create(ctx, &entity.Product{ID: "p1", Code: "CAM-1", Name: "Cámara"}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(repos inventory.Repos) error {
		require.NoError(t, repos.Stock.AddAvailable(ctx, "p1", "w1", 4))
		require.NoError(t, repos.Products.AdjustTotalOwned(ctx, "p1", 4))
		return boom
	})
	require.ErrorIs(t, err, boom)

	s, err := store.Repos().Stock.Get(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Nil(t, s)
	p, err := store.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalOwned)
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	err := store.Run(ctx, func(repos inventory.Repos) error {
		return repos.Stock.AddAvailable(ctx, "p1", "w1", 3)
	})
	require.NoError(t, err)

	s, err := store.Repos().Stock.Get(ctx, "p1", "w1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 3, s.Available)
}

func TestStockRepo_ApplyMoveSinSaldoEsInconsistencia(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	require.NoError(t, repos.Stock.AddAvailable(ctx, "p1", "w1", 1))

	err := repos.Stock.ApplyMove(ctx, "p1", "w1", domaininv.Available, domaininv.Reserved, 2)
	assert.ErrorIs(t, err, domain.ErrLedgerInconsistency)

	s, _ := repos.Stock.Get(ctx, "p1", "w1")
	assert.Equal(t, 1, s.Available)
	assert.Equal(t, 0, s.Reserved)
}

func TestStockRepo_RemoveAvailableNoDejaNegativos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	require.NoError(t, repos.Stock.AddAvailable(ctx, "p1", "w1", 2))

	err := repos.Stock.RemoveAvailable(ctx, "p1", "w1", 3)
	assert.ErrorIs(t, err, domain.ErrLedgerInconsistency)

	s, _ := repos.Stock.Get(ctx, "p1", "w1")
	assert.Equal(t, 2, s.Available)

	require.NoError(t, repos.Stock.RemoveAvailable(ctx, "p1", "w1", 2))
	s, _ = repos.Stock.Get(ctx, "p1", "w1")
	assert.Equal(t, 0, s.Available)
}

func TestOrderRepo_ListCommitments(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	orders := store.Repos().Orders
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC) }

	for _, o := range []entity.Order{
		{ID: "o1", Status: entity.OrderStatusBooked, StartDate: day(1), EndDate: day(5)},
		{ID: "o2", Status: entity.OrderStatusActive, StartDate: day(5), EndDate: day(8)},
		{ID: "o3", Status: entity.OrderStatusCompleted, StartDate: day(1), EndDate: day(9)},
		{ID: "o4", Status: entity.OrderStatusBooked, StartDate: day(20), EndDate: day(22)},
	} {
		o := o
		require.NoError(t, orders.Create(ctx, &o))
		require.NoError(t, orders.CreateItem(ctx, &entity.OrderItem{ID: o.ID + "-i", OrderID: o.ID, ProductID: "p1", Quantity: 2}))
	}
	require.NoError(t, orders.CreateItem(ctx, &entity.OrderItem{ID: "ext", OrderID: "o1", IsExternal: true, ExternalName: "Grúa", Quantity: 1}))

	got, err := orders.ListCommitments(ctx, "p1", day(5), day(6), "")
	require.NoError(t, err)
	ids := []string{}
	for _, c := range got {
		ids = append(ids, c.OrderID)
	}
	assert.ElementsMatch(t, []string{"o1", "o2"}, ids)

	got, err = orders.ListCommitments(ctx, "p1", day(5), day(6), "o1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "o2", got[0].OrderID)
}

func TestSerialRepo_ListOrdenaPorAntiguedad(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	serials := store.Repos().Serials
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, serials.Create(ctx, &entity.DeviceSerial{ID: "s2", ProductID: "p1", SerialNumber: "B", Status: entity.SerialStatusDirty, UpdatedAt: base.Add(time.Hour)}))
	require.NoError(t, serials.Create(ctx, &entity.DeviceSerial{ID: "s1", ProductID: "p1", SerialNumber: "A", Status: entity.SerialStatusDirty, UpdatedAt: base}))
	require.NoError(t, serials.Create(ctx, &entity.DeviceSerial{ID: "s3", ProductID: "p1", SerialNumber: "C", Status: entity.SerialStatusAvailable, UpdatedAt: base}))

	err := serials.Create(ctx, &entity.DeviceSerial{ID: "s4", ProductID: "p1", SerialNumber: "A"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := serials.List(ctx, repository.SerialFilter{ProductID: "p1", Status: entity.SerialStatusDirty})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ID)
	assert.Equal(t, "s2", list[1].ID)
}
