package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/memory"
)

const wh = "w1"

type env struct {
	ctx     context.Context
	store   *memory.Store
	ledger  *inventory.Ledger
	stock   *inventory.StockUseCase
	serials *inventory.SerialUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: wh, Name: "Principal"}))
	ledger := inventory.NewLedger(nil)
	registry := inventory.NewSerialRegistry(ledger)
	log := zerolog.Nop()
	return &env{
		ctx:     ctx,
		store:   store,
		ledger:  ledger,
		stock:   inventory.NewStockUseCase(store, repos, ledger, registry, inventory.NewAvailability(), wh, log, nil),
		serials: inventory.NewSerialUseCase(store, repos, registry, wh, log, nil),
	}
}

func (e *env) product(t *testing.T, units int) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.store.Repos().Products.Create(e.ctx, &entity.Product{ID: id, Code: "P-" + id[:8], Name: "Equipo"}))
	if units > 0 {
		_, err := e.stock.Receive(e.ctx, dto.StockQuantityRequest{ProductID: id, Quantity: units})
		require.NoError(t, err)
	}
	return id
}

// move aplica un movimiento directo del libro dentro de una transacción.
func (e *env) move(t *testing.T, productID string, from, to domaininv.Bucket, qty int) {
	t.Helper()
	err := e.store.Run(e.ctx, func(repos inventory.Repos) error {
		return e.ledger.Move(e.ctx, repos, inventory.Move{
			ProductID: productID, WarehouseID: wh, From: from, To: to, Quantity: qty, Action: entity.LogActionAdjust,
		})
	})
	require.NoError(t, err)
}

// ─── Receive / Overview ──────────────────────────────────────────────────────

func TestReceive_SumaAvailableYTotalOwned(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 4)

	ov, err := e.stock.Receive(e.ctx, dto.StockQuantityRequest{ProductID: p, Quantity: 3, Note: "compra"})
	require.NoError(t, err)

	assert.Equal(t, 7, ov.TotalOwned)
	assert.Equal(t, dto.BucketTotals{Available: 7}, ov.Totals)
	assert.True(t, ov.Balanced)
	require.Len(t, ov.Warehouses, 1)
	assert.Equal(t, wh, ov.Warehouses[0].WarehouseID)
}

func TestReceive_ProductoOBodegaInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.stock.Receive(e.ctx, dto.StockQuantityRequest{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := e.product(t, 0)
	_, err = e.stock.Receive(e.ctx, dto.StockQuantityRequest{ProductID: p, WarehouseID: "otra", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.stock.Receive(e.ctx, dto.StockQuantityRequest{ProductID: p, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Clean / Damage / Repair ─────────────────────────────────────────────────

func TestClean_SinSuciosSuficientes(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 5)
	e.move(t, p, domaininv.Available, domaininv.OnRent, 3)
	e.move(t, p, domaininv.OnRent, domaininv.Dirty, 2)

	_, err := e.stock.Clean(e.ctx, dto.StockQuantityRequest{ProductID: p, Quantity: 3})
	require.ErrorIs(t, err, domain.ErrInsufficientDirtyStock)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 2, short.Available)

	ov, err := e.stock.Clean(e.ctx, dto.StockQuantityRequest{ProductID: p, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Available: 4, OnRent: 1}, ov.Totals)
}

func TestDamageYRepair_Granel(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 5)

	ov, err := e.stock.Damage(e.ctx, dto.DamageRequest{ProductID: p, From: "available", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Available: 3, Broken: 2}, ov.Totals)

	_, err = e.stock.Damage(e.ctx, dto.DamageRequest{ProductID: p, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "por defecto se daña desde dirty")

	ov, err = e.stock.Repair(e.ctx, dto.RepairRequest{ProductID: p, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Available: 5}, ov.Totals)
}

func TestDamage_SerialYaDanadoNoSeVuelveADanar(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 0)
	s, err := e.serials.Add(e.ctx, dto.CreateSerialRequest{ProductID: p, SerialNumber: "SN-1"})
	require.NoError(t, err)

	ov, err := e.stock.Damage(e.ctx, dto.DamageRequest{ProductID: p, SerialIDs: []string{s.ID}})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Broken: 1}, ov.Totals)

	_, err = e.stock.Damage(e.ctx, dto.DamageRequest{ProductID: p, SerialIDs: []string{s.ID}})
	assert.ErrorIs(t, err, domain.ErrSerialInUse)

	ov, err = e.stock.Repair(e.ctx, dto.RepairRequest{ProductID: p, SerialIDs: []string{s.ID}})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Available: 1}, ov.Totals)
}

func TestDamageYRepair_GranelSincronizaSeriales(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 1)
	s, err := e.serials.Add(e.ctx, dto.CreateSerialRequest{ProductID: p, SerialNumber: "SN-9"})
	require.NoError(t, err)
	status := func() string {
		got, err := e.store.Repos().Serials.GetByID(e.ctx, s.ID)
		require.NoError(t, err)
		return got.Status
	}

	ov, err := e.stock.Damage(e.ctx, dto.DamageRequest{ProductID: p, From: "available", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Broken: 2}, ov.Totals)
	assert.Equal(t, entity.SerialStatusBroken, status())

	err = e.serials.Delete(e.ctx, s.ID)
	require.ErrorIs(t, err, domain.ErrSerialInUse)

	ov, err = e.stock.Repair(e.ctx, dto.RepairRequest{ProductID: p, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, dto.BucketTotals{Available: 1, Broken: 1}, ov.Totals)
	assert.Equal(t, entity.SerialStatusAvailable, status())

	require.NoError(t, e.serials.Delete(e.ctx, s.ID))
}

// ─── Seriales ────────────────────────────────────────────────────────────────

func TestSerial_AltaYBajaAjustanTotalOwned(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 2)

	s, err := e.serials.Add(e.ctx, dto.CreateSerialRequest{ProductID: p, SerialNumber: "XK-100"})
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusAvailable, s.Status)
	assert.Equal(t, wh, s.WarehouseID)

	_, err = e.serials.Add(e.ctx, dto.CreateSerialRequest{ProductID: p, SerialNumber: "XK-100"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	ov, err := e.stock.Overview(e.ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 3, ov.TotalOwned)

	require.NoError(t, e.serials.Delete(e.ctx, s.ID))
	ov, err = e.stock.Overview(e.ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, ov.TotalOwned)
	assert.True(t, ov.Balanced)
}

func TestSerial_BajaDeSerialEnUso(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 0)
	s, err := e.serials.Add(e.ctx, dto.CreateSerialRequest{ProductID: p, SerialNumber: "XK-200"})
	require.NoError(t, err)
	_, err = e.stock.Damage(e.ctx, dto.DamageRequest{ProductID: p, SerialIDs: []string{s.ID}})
	require.NoError(t, err)

	err = e.serials.Delete(e.ctx, s.ID)
	require.ErrorIs(t, err, domain.ErrSerialInUse)
	var stateErr *domain.SerialStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, entity.SerialStatusBroken, stateErr.Status)

	ov, err := e.stock.Overview(e.ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 1, ov.TotalOwned)

	assert.ErrorIs(t, e.serials.Delete(e.ctx, "no-existe"), domain.ErrNotFound)
}

// ─── Disponibilidad ──────────────────────────────────────────────────────────

func TestCheck_ExcluyeBrokenYPedidoEditado(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 6)
	e.move(t, p, domaininv.Available, domaininv.Broken, 1)
	orders := e.store.Repos().Orders
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, orders.Create(e.ctx, &entity.Order{ID: "o1", Status: entity.OrderStatusBooked, StartDate: start, EndDate: start.AddDate(0, 0, 2)}))
	require.NoError(t, orders.CreateItem(e.ctx, &entity.OrderItem{ID: "i1", OrderID: "o1", ProductID: p, WarehouseID: wh, Quantity: 4}))

	res, err := e.stock.Check(e.ctx, dto.AvailabilityQuery{ProductID: p, Quantity: 2, StartDate: "2025-05-02", EndDate: "2025-05-02"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Available)
	assert.False(t, res.IsEnough)

	res, err = e.stock.Check(e.ctx, dto.AvailabilityQuery{ProductID: p, Quantity: 2, StartDate: "2025-05-02", EndDate: "2025-05-02", ExcludeOrderID: "o1"})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Available)
	assert.True(t, res.IsEnough)
}

func TestCheck_SobreReservaSeMuestraEnCero(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 2)
	orders := e.store.Repos().Orders
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, orders.Create(e.ctx, &entity.Order{ID: "o1", Status: entity.OrderStatusActive, StartDate: start, EndDate: start}))
	require.NoError(t, orders.CreateItem(e.ctx, &entity.OrderItem{ID: "i1", OrderID: "o1", ProductID: p, WarehouseID: wh, Quantity: 5}))

	res, err := e.stock.Check(e.ctx, dto.AvailabilityQuery{ProductID: p, Quantity: 0, StartDate: "2025-05-01", EndDate: "2025-05-01"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Available)
	assert.False(t, res.IsEnough)
}

func TestCheck_EntradasInvalidas(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 1)

	_, err := e.stock.Check(e.ctx, dto.AvailabilityQuery{ProductID: p, StartDate: "01/05/2025", EndDate: "2025-05-02"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.stock.Check(e.ctx, dto.AvailabilityQuery{ProductID: p, StartDate: "2025-05-03", EndDate: "2025-05-02"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.stock.Check(e.ctx, dto.AvailabilityQuery{ProductID: "nope", StartDate: "2025-05-01", EndDate: "2025-05-02"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Log ─────────────────────────────────────────────────────────────────────

func TestLogs_OrdenInversoYReplay(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 5)
	e.move(t, p, domaininv.Available, domaininv.Reserved, 2)
	e.move(t, p, domaininv.Reserved, domaininv.OnRent, 2)

	list, err := e.stock.Logs(e.ctx, p, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "reserved", list.Items[0].From)
	assert.Equal(t, "onRent", list.Items[0].To)

	all, err := e.stock.Logs(e.ctx, p, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, entity.LogActionReceive, all.Items[2].Action)

	replay, err := e.stock.Replay(e.ctx, p)
	require.NoError(t, err)
	assert.True(t, replay.Consistent)
	assert.Equal(t, dto.BucketTotals{Available: 3, OnRent: 2}, replay.Replayed)
}
