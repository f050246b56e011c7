package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/application/usecase"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/memory"
	httpapi "github.com/jhoicas/rental-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

const warehouseID = "w1"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.New()
	repos := store.Repos()
	require.NoError(t, repos.Warehouses.Create(context.Background(), &entity.Warehouse{ID: warehouseID, Name: "Principal"}))

	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	log := zerolog.Nop()
	ledger := appinv.NewLedger(rec)
	serials := appinv.NewSerialRegistry(ledger)
	availability := appinv.NewAvailability()

	app := fiber.New(fiber.Config{ErrorHandler: httpapi.ErrorHandler(log)})
	httpapi.Router(app, httpapi.RouterDeps{
		ServiceName: "rental-test",
		ProductUC:   usecase.NewProductUseCase(repos.Products),
		WarehouseUC: usecase.NewWarehouseUseCase(repos.Warehouses),
		CustomerUC:  usecase.NewCustomerUseCase(store.Customers()),
		SupplierUC:  usecase.NewSupplierUseCase(store.Suppliers()),
		StockUC:     appinv.NewStockUseCase(store, repos, ledger, serials, availability, warehouseID, log, rec),
		SerialUC:    appinv.NewSerialUseCase(store, repos, serials, warehouseID, log, rec),
		OrderUC: orders.NewUseCase(store, repos, store.Customers(), store.Suppliers(),
			ledger, serials, availability, nil, warehouseID, log, rec),
		Metrics: reg,
	})
	return app
}

// call ejecuta la petición y decodifica el JSON de respuesta en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func seedProduct(t *testing.T, app *fiber.App, code string, units int) string {
	t.Helper()
	var p dto.ProductResponse
	require.Equal(t, nethttp.StatusCreated, call(t, app, "POST", "/api/products",
		map[string]any{"code": code, "name": "Equipo " + code, "price_per_day": "25"}, &p))
	if units > 0 {
		require.Equal(t, nethttp.StatusCreated, call(t, app, "POST", "/api/inventory/receive",
			map[string]any{"product_id": p.ID, "warehouse_id": warehouseID, "quantity": units}, nil))
	}
	return p.ID
}

func seedCustomer(t *testing.T, app *fiber.App) string {
	t.Helper()
	var c dto.CustomerResponse
	require.Equal(t, nethttp.StatusCreated, call(t, app, "POST", "/api/customers", map[string]any{"name": "Eventos del Valle"}, &c))
	return c.ID
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	var body map[string]string
	assert.Equal(t, nethttp.StatusOK, call(t, app, "GET", "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCreateProduct_ValidacionDevuelveCampos(t *testing.T) {
	app := newTestApp(t)
	var errBody dto.ErrorResponse
	status := call(t, app, "POST", "/api/products", map[string]any{"name": "Sin código"}, &errBody)

	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "required", errBody.Details["code"])
}

func TestCreateProduct_CodigoDuplicado(t *testing.T) {
	app := newTestApp(t)
	seedProduct(t, app, "CAM", 0)

	var errBody dto.ErrorResponse
	status := call(t, app, "POST", "/api/products", map[string]any{"code": "CAM", "name": "Otra"}, &errBody)
	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errBody.Code)
}

func TestOrderFlow_DeReservaACierre(t *testing.T) {
	app := newTestApp(t)
	productID := seedProduct(t, app, "LUZ", 5)
	customerID := seedCustomer(t, app)

	var order dto.OrderResponse
	require.Equal(t, nethttp.StatusCreated, call(t, app, "POST", "/api/orders", map[string]any{
		"customer_id": customerID,
		"start_date":  "2026-05-01",
		"end_date":    "2026-05-03",
		"items":       []map[string]any{{"product_id": productID, "quantity": 3}},
	}, &order))
	assert.Equal(t, entity.OrderStatusBooked, order.Status)
	assert.Equal(t, "225", order.TotalAmount.String()) // 25 x 3 x 3 días

	var avail dto.AvailabilityResponse
	require.Equal(t, nethttp.StatusOK, call(t, app, "GET",
		fmt.Sprintf("/api/inventory/availability?product_id=%s&quantity=3&start_date=2026-05-03&end_date=2026-05-04", productID), nil, &avail))
	assert.Equal(t, 2, avail.Available)
	assert.False(t, avail.IsEnough)

	require.Equal(t, nethttp.StatusOK, call(t, app, "POST", "/api/orders/"+order.ID+"/ship", nil, &order))
	assert.Equal(t, entity.OrderStatusActive, order.Status)

	require.Equal(t, nethttp.StatusOK, call(t, app, "POST", "/api/orders/"+order.ID+"/return", map[string]any{
		"items": []map[string]any{{"item_id": order.Items[0].ID, "quantity": 3}},
	}, &order))
	assert.Equal(t, entity.OrderStatusCompleted, order.Status)
	assert.NotNil(t, order.ActualReturnDate)

	var overview dto.StockOverviewResponse
	require.Equal(t, nethttp.StatusOK, call(t, app, "GET", "/api/inventory/products/"+productID+"/stock", nil, &overview))
	assert.Equal(t, dto.BucketTotals{Available: 2, Dirty: 3}, overview.Totals)
	assert.True(t, overview.Balanced)

	var logs struct {
		Items []dto.InventoryLogResponse `json:"items"`
	}
	require.Equal(t, nethttp.StatusOK, call(t, app, "GET", "/api/orders/"+order.ID+"/logs", nil, &logs))
	require.Len(t, logs.Items, 2)
	assert.Equal(t, entity.LogActionExport, logs.Items[0].Action)
	assert.Equal(t, entity.LogActionImport, logs.Items[1].Action)

	var replay dto.ReplayResponse
	require.Equal(t, nethttp.StatusOK, call(t, app, "GET", "/api/inventory/products/"+productID+"/replay", nil, &replay))
	assert.True(t, replay.Consistent)
}

func TestCreateOrder_SinDisponibilidadDevuelveDetalle(t *testing.T) {
	app := newTestApp(t)
	productID := seedProduct(t, app, "SON", 2)
	customerID := seedCustomer(t, app)

	var errBody dto.ErrorResponse
	status := call(t, app, "POST", "/api/orders", map[string]any{
		"customer_id": customerID,
		"start_date":  "2026-05-01",
		"end_date":    "2026-05-01",
		"items":       []map[string]any{{"product_id": productID, "quantity": 3}},
	}, &errBody)

	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	assert.EqualValues(t, 3, errBody.Details["requested"])
	assert.EqualValues(t, 2, errBody.Details["available"])
}

func TestClean_SinUnidadesSucias(t *testing.T) {
	app := newTestApp(t)
	productID := seedProduct(t, app, "MIC", 1)

	var errBody dto.ErrorResponse
	status := call(t, app, "POST", "/api/inventory/clean",
		map[string]any{"product_id": productID, "quantity": 1}, &errBody)
	assert.Equal(t, nethttp.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_DIRTY_STOCK", errBody.Code)
}

func TestSerials_AltaListadoYBaja(t *testing.T) {
	app := newTestApp(t)
	productID := seedProduct(t, app, "CAM4K", 0)

	var s dto.SerialResponse
	require.Equal(t, nethttp.StatusCreated, call(t, app, "POST", "/api/serials",
		map[string]any{"product_id": productID, "serial_number": "SN-001"}, &s))
	assert.Equal(t, entity.SerialStatusAvailable, s.Status)

	var list struct {
		Items []dto.SerialResponse `json:"items"`
	}
	require.Equal(t, nethttp.StatusOK, call(t, app, "GET", "/api/serials?product_id="+productID, nil, &list))
	assert.Len(t, list.Items, 1)

	assert.Equal(t, nethttp.StatusNoContent, call(t, app, "DELETE", "/api/serials/"+s.ID, nil, nil))
	var errBody dto.ErrorResponse
	assert.Equal(t, nethttp.StatusNotFound, call(t, app, "DELETE", "/api/serials/"+s.ID, nil, &errBody))
}

func TestOrders_ErroresDeEstado(t *testing.T) {
	app := newTestApp(t)

	var errBody dto.ErrorResponse
	assert.Equal(t, nethttp.StatusNotFound, call(t, app, "GET", "/api/orders/no-existe", nil, &errBody))
	assert.Equal(t, "NOT_FOUND", errBody.Code)

	productID := seedProduct(t, app, "PRO", 2)
	customerID := seedCustomer(t, app)
	var order dto.OrderResponse
	require.Equal(t, nethttp.StatusCreated, call(t, app, "POST", "/api/orders", map[string]any{
		"customer_id": customerID, "start_date": "2026-06-01", "end_date": "2026-06-02",
		"items": []map[string]any{{"product_id": productID, "quantity": 1}},
	}, &order))

	assert.Equal(t, nethttp.StatusBadRequest, call(t, app, "PATCH", "/api/orders/"+order.ID+"/status",
		map[string]any{"status": "PERDIDO"}, &errBody))

	assert.Equal(t, nethttp.StatusConflict, call(t, app, "PATCH", "/api/orders/"+order.ID+"/status",
		map[string]any{"status": "ACTIVE"}, &errBody))
	assert.Equal(t, "INVALID_TRANSITION", errBody.Code)

	assert.Equal(t, nethttp.StatusServiceUnavailable, call(t, app, "GET", "/api/orders/"+order.ID+"/delivery-note", nil, &errBody))
	assert.Equal(t, "PDF_DISABLED", errBody.Code)
}

func TestMetrics_ExponeOperaciones(t *testing.T) {
	app := newTestApp(t)
	seedProduct(t, app, "CAB", 3)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(raw), `rental_operations_total{operation="receive",outcome="success"} 1`))
	assert.Contains(t, string(raw), "rental_ledger_moves_total")
}
