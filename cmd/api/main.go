package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/application/usecase"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/rental-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rental-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/rental-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/rental-inventory-api/pkg/config"
	"github.com/jhoicas/rental-inventory-api/pkg/logger"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

// storage puertos de persistencia según DB_DRIVER.
type storage struct {
	tx        inventory.TxRunner
	repos     inventory.Repos
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer store.close()

	var gatherer prometheus.Gatherer
	var rec *metrics.Recorder
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewRecorder(reg)
		gatherer = reg
	} else {
		rec = metrics.NewRecorder(nil)
	}

	warehouseID := cfg.Rental.DefaultWarehouseID
	ledger := inventory.NewLedger(rec)
	serials := inventory.NewSerialRegistry(ledger)
	availability := inventory.NewAvailability()

	stockUC := inventory.NewStockUseCase(store.tx, store.repos, ledger, serials, availability, warehouseID, log.Component("inventory"), rec)
	serialUC := inventory.NewSerialUseCase(store.tx, store.repos, serials, warehouseID, log.Component("serials"), rec)
	orderUC := orders.NewUseCase(
		store.tx, store.repos, store.customers, store.suppliers,
		ledger, serials, availability,
		infrapdf.NewDeliveryNoteGenerator(cfg.App.Name),
		warehouseID, log.Component("orders"), rec,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		ProductUC:   usecase.NewProductUseCase(store.repos.Products),
		WarehouseUC: usecase.NewWarehouseUseCase(store.repos.Warehouses),
		CustomerUC:  usecase.NewCustomerUseCase(store.customers),
		SupplierUC:  usecase.NewSupplierUseCase(store.suppliers),
		StockUC:     stockUC,
		SerialUC:    serialUC,
		OrderUC:     orderUC,
		Metrics:     gatherer,
		SwaggerFile: cfg.HTTP.SwaggerFile,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		store := memory.New()
		// Sin migraciones: la bodega por defecto se crea al arrancar.
		now := time.Now()
		if err := store.Repos().Warehouses.Create(ctx, &entity.Warehouse{
			ID: cfg.Rental.DefaultWarehouseID, Name: "Bodega principal", CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return nil, err
		}
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		return &storage{
			tx:        store,
			repos:     store.Repos(),
			customers: store.Customers(),
			suppliers: store.Suppliers(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		db := postgres.OpenSQL(pool)
		err := postgres.Migrate(ctx, db, "up")
		_ = db.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		repos:     postgres.NewRepos(pool),
		customers: postgres.NewCustomerRepository(pool),
		suppliers: postgres.NewSupplierRepository(pool),
		close:     pool.Close,
	}, nil
}
