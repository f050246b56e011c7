package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	StockUC     *inventory.StockUseCase
	SerialUC    *inventory.SerialUseCase
	OrderUC     *orders.UseCase
	// Metrics nil = sin /metrics.
	Metrics     prometheus.Gatherer
	SwaggerFile string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	val := NewValidator()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}
	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Rental Inventory API",
			}))
		}
	}

	api := app.Group("/api")

	catalog := NewCatalogHandler(deps.ProductUC, deps.WarehouseUC, deps.CustomerUC, deps.SupplierUC, val)
	products := api.Group("/products")
	products.Post("/", catalog.CreateProduct)
	products.Get("/", catalog.ListProducts)
	products.Get("/:id", catalog.GetProduct)
	products.Put("/:id", catalog.UpdateProduct)

	warehouses := api.Group("/warehouses")
	warehouses.Post("/", catalog.CreateWarehouse)
	warehouses.Get("/", catalog.ListWarehouses)
	warehouses.Get("/:id", catalog.GetWarehouse)

	api.Post("/customers", catalog.CreateCustomer)
	api.Get("/customers", catalog.ListCustomers)
	api.Post("/suppliers", catalog.CreateSupplier)
	api.Get("/suppliers", catalog.ListSuppliers)

	inv := NewInventoryHandler(deps.StockUC, deps.SerialUC, val)
	invGroup := api.Group("/inventory")
	invGroup.Get("/availability", inv.Availability)
	invGroup.Get("/products/:id/stock", inv.Overview)
	invGroup.Get("/products/:id/logs", inv.Logs)
	invGroup.Get("/products/:id/replay", inv.Replay)
	invGroup.Post("/receive", inv.Receive)
	invGroup.Post("/clean", inv.Clean)
	invGroup.Post("/damage", inv.Damage)
	invGroup.Post("/repair", inv.Repair)

	serials := api.Group("/serials")
	serials.Post("/", inv.AddSerial)
	serials.Get("/", inv.ListSerials)
	serials.Delete("/:id", inv.DeleteSerial)

	ord := NewOrderHandler(deps.OrderUC, val)
	orderGroup := api.Group("/orders")
	orderGroup.Post("/", ord.Create)
	orderGroup.Get("/:id", ord.Get)
	orderGroup.Post("/:id/prepare", ord.Prepare)
	orderGroup.Post("/:id/release", ord.Release)
	orderGroup.Post("/:id/ship", ord.Ship)
	orderGroup.Post("/:id/return", ord.Return)
	orderGroup.Post("/:id/force-complete", ord.ForceComplete)
	orderGroup.Post("/:id/cancel", ord.Cancel)
	orderGroup.Patch("/:id/status", ord.PatchStatus)
	orderGroup.Get("/:id/logs", ord.Logs)
	orderGroup.Get("/:id/delivery-note", ord.DeliveryNote)
}
