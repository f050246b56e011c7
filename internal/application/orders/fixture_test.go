package orders_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

const warehouseID = "w1"

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	stock    *appinv.StockUseCase
	serials  *appinv.SerialUseCase
	orders   *orders.UseCase
	registry *prometheus.Registry
	logs     *bytes.Buffer
	customer string
}

func newFixture(t *testing.T, pdf orders.DeliveryNotePDFGenerator) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	buf := &bytes.Buffer{}
	log := zerolog.New(buf)

	repos := store.Repos()
	ledger := appinv.NewLedger(rec)
	registry := appinv.NewSerialRegistry(ledger)
	availability := appinv.NewAvailability()

	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{ID: warehouseID, Name: "Bodega principal"}))
	customerID := uuid.New().String()
	require.NoError(t, store.Customers().Create(ctx, &entity.Customer{ID: customerID, Name: "Eventos del Valle"}))

	return &fixture{
		ctx:      ctx,
		store:    store,
		stock:    appinv.NewStockUseCase(store, repos, ledger, registry, availability, warehouseID, log, rec),
		serials:  appinv.NewSerialUseCase(store, repos, registry, warehouseID, log, rec),
		orders:   orders.NewUseCase(store, repos, store.Customers(), store.Suppliers(), ledger, registry, availability, pdf, warehouseID, log, rec),
		registry: reg,
		logs:     buf,
		customer: customerID,
	}
}

// product crea un producto con units unidades a granel en la bodega.
func (f *fixture) product(t *testing.T, code string, units int) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Repos().Products.Create(f.ctx, &entity.Product{
		ID: id, Code: code, Name: "Equipo " + code, PricePerDay: decimal.NewFromInt(10),
	}))
	if units > 0 {
		_, err := f.stock.Receive(f.ctx, dto.StockQuantityRequest{ProductID: id, WarehouseID: warehouseID, Quantity: units})
		require.NoError(t, err)
	}
	return id
}

// serial registra una unidad serializada del producto.
func (f *fixture) serial(t *testing.T, productID, number string) string {
	t.Helper()
	s, err := f.serials.Add(f.ctx, dto.CreateSerialRequest{ProductID: productID, SerialNumber: number})
	require.NoError(t, err)
	return s.ID
}

func (f *fixture) order(t *testing.T, start, end string, items ...dto.CreateOrderItemRequest) *dto.OrderResponse {
	t.Helper()
	o, err := f.orders.Create(f.ctx, dto.CreateOrderRequest{CustomerID: f.customer, StartDate: start, EndDate: end, Items: items})
	require.NoError(t, err)
	return o
}

func line(productID string, qty int) dto.CreateOrderItemRequest {
	return dto.CreateOrderItemRequest{ProductID: productID, Quantity: qty}
}

// buckets totales actuales; exige que la suma cuadre con total_owned.
func (f *fixture) buckets(t *testing.T, productID string) dto.BucketTotals {
	t.Helper()
	ov, err := f.stock.Overview(f.ctx, productID)
	require.NoError(t, err)
	require.True(t, ov.Balanced, "suma de buckets %d != total_owned %d", ov.Totals.Sum(), ov.TotalOwned)
	return ov.Totals
}

func (f *fixture) get(t *testing.T, orderID string) *dto.OrderResponse {
	t.Helper()
	o, err := f.orders.Get(f.ctx, orderID)
	require.NoError(t, err)
	return o
}

func (f *fixture) serialStatus(t *testing.T, serialID string) string {
	t.Helper()
	s, err := f.store.Repos().Serials.GetByID(f.ctx, serialID)
	require.NoError(t, err)
	require.NotNil(t, s)
	return s.Status
}

// operations valor de rental_operations_total{operation, outcome}.
func (f *fixture) operations(t *testing.T, operation, outcome string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "rental_operations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["operation"] == operation && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
