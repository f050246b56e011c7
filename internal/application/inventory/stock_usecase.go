package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

// StockUseCase operaciones de bodega que no pertenecen a un pedido: disponibilidad, altas,
// limpieza, daños y reparaciones, y consultas del libro y su log.
type StockUseCase struct {
	tx                 TxRunner
	repos              Repos
	ledger             *Ledger
	serials            *SerialRegistry
	availability       *Availability
	defaultWarehouseID string
	log                zerolog.Logger
	metrics            *metrics.Recorder
}

// NewStockUseCase construye el caso de uso. repos se usa solo para lecturas fuera de transacción.
func NewStockUseCase(
	tx TxRunner,
	repos Repos,
	ledger *Ledger,
	serials *SerialRegistry,
	availability *Availability,
	defaultWarehouseID string,
	log zerolog.Logger,
	rec *metrics.Recorder,
) *StockUseCase {
	return &StockUseCase{
		tx:                 tx,
		repos:              repos,
		ledger:             ledger,
		serials:            serials,
		availability:       availability,
		defaultWarehouseID: defaultWarehouseID,
		log:                log,
		metrics:            rec,
	}
}

// Check responde si quantity unidades caben en [start_date, end_date].
// La cifra devuelta se muestra en cero si hay sobre-reserva.
func (uc *StockUseCase) Check(ctx context.Context, q dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	start, err := dto.ParseDate("start_date", q.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := dto.ParseDate("end_date", q.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	product, err := uc.repos.Products.GetByID(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, q.ProductID)
	}
	n, err := uc.availability.Compute(ctx, uc.repos, q.ProductID, start, end, q.ExcludeOrderID)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityResponse{
		ProductID: q.ProductID,
		StartDate: dto.FormatDate(start),
		EndDate:   dto.FormatDate(end),
		Requested: q.Quantity,
		Available: max(n, 0),
		IsEnough:  n >= q.Quantity,
	}, nil
}

// Receive da de alta unidades a granel en available.
func (uc *StockUseCase) Receive(ctx context.Context, in dto.StockQuantityRequest) (res *dto.StockOverviewResponse, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveOperation("receive", started, err) }()

	warehouseID := warehouseOr(in.WarehouseID, uc.defaultWarehouseID)
	if err := requirePositive(in.Quantity); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos Repos) error {
		if _, err := LockProduct(ctx, repos, in.ProductID); err != nil {
			return err
		}
		if err := RequireWarehouse(ctx, repos, warehouseID); err != nil {
			return err
		}
		return uc.ledger.Receive(ctx, repos, in.ProductID, warehouseID, "", in.Quantity, in.Note)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", warehouseID).
		Int("quantity", in.Quantity).
		Msg("unidades recibidas")
	return uc.Overview(ctx, in.ProductID)
}

// Clean pasa unidades de dirty a available. Los seriales DIRTY de la bodega se liberan primero
// (los que llevan más tiempo sucios), el resto se mueve a granel.
func (uc *StockUseCase) Clean(ctx context.Context, in dto.StockQuantityRequest) (res *dto.StockOverviewResponse, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveOperation("clean", started, err) }()

	warehouseID := warehouseOr(in.WarehouseID, uc.defaultWarehouseID)
	if err := requirePositive(in.Quantity); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos Repos) error {
		if _, err := LockProduct(ctx, repos, in.ProductID); err != nil {
			return err
		}
		if err := RequireWarehouse(ctx, repos, warehouseID); err != nil {
			return err
		}
		stock, err := uc.ledger.Balance(ctx, repos, in.ProductID, warehouseID)
		if err != nil {
			return err
		}
		if stock.Dirty < in.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   in.ProductID,
				WarehouseID: warehouseID,
				Bucket:      string(inventory.Dirty),
				Requested:   in.Quantity,
				Available:   stock.Dirty,
				Sentinel:    domain.ErrInsufficientDirtyStock,
			}
		}
		return uc.serials.Move(ctx, repos, Move{
			ProductID:   in.ProductID,
			WarehouseID: warehouseID,
			From:        inventory.Dirty,
			To:          inventory.Available,
			Quantity:    in.Quantity,
			Action:      entity.LogActionClean,
			Note:        in.Note,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("warehouse_id", warehouseID).
		Int("quantity", in.Quantity).
		Msg("unidades limpiadas")
	return uc.Overview(ctx, in.ProductID)
}

// Damage reporta unidades dañadas (available|dirty -> broken).
func (uc *StockUseCase) Damage(ctx context.Context, in dto.DamageRequest) (res *dto.StockOverviewResponse, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveOperation("damage", started, err) }()

	from := inventory.Dirty
	if in.From != "" {
		if from, err = inventory.ParseBucket(in.From); err != nil {
			return nil, err
		}
	}
	err = uc.tx.Run(ctx, func(repos Repos) error {
		if _, err := LockProduct(ctx, repos, in.ProductID); err != nil {
			return err
		}
		if len(in.SerialIDs) > 0 {
			return uc.eachSerial(ctx, repos, in.ProductID, in.SerialIDs, func(s *entity.DeviceSerial) error {
				return uc.serials.Damage(ctx, repos, s, in.Note)
			})
		}
		return uc.bulkMove(ctx, repos, in.ProductID, in.WarehouseID, from, inventory.Broken, in.Quantity, entity.LogActionDamage, in.Note)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Warn().
		Str("product_id", in.ProductID).
		Int("quantity", in.Quantity).
		Int("serials", len(in.SerialIDs)).
		Msg("unidades reportadas como dañadas")
	return uc.Overview(ctx, in.ProductID)
}

// Repair devuelve unidades reparadas a available.
func (uc *StockUseCase) Repair(ctx context.Context, in dto.RepairRequest) (res *dto.StockOverviewResponse, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveOperation("repair", started, err) }()

	err = uc.tx.Run(ctx, func(repos Repos) error {
		if _, err := LockProduct(ctx, repos, in.ProductID); err != nil {
			return err
		}
		if len(in.SerialIDs) > 0 {
			return uc.eachSerial(ctx, repos, in.ProductID, in.SerialIDs, func(s *entity.DeviceSerial) error {
				return uc.serials.Repair(ctx, repos, s, in.Note)
			})
		}
		return uc.bulkMove(ctx, repos, in.ProductID, in.WarehouseID, inventory.Broken, inventory.Available, in.Quantity, entity.LogActionRepair, in.Note)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", in.ProductID).
		Int("quantity", in.Quantity).
		Int("serials", len(in.SerialIDs)).
		Msg("unidades reparadas")
	return uc.Overview(ctx, in.ProductID)
}

// Overview totales por bucket y bodega, con chequeo de conservación contra total_owned.
func (uc *StockUseCase) Overview(ctx context.Context, productID string) (*dto.StockOverviewResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	stocks, err := uc.repos.Stock.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	res := &dto.StockOverviewResponse{
		ProductID:  product.ID,
		Code:       product.Code,
		Name:       product.Name,
		TotalOwned: product.TotalOwned,
		Warehouses: make([]dto.WarehouseStock, 0, len(stocks)),
	}
	for _, s := range stocks {
		b := toBucketTotals(s)
		res.Totals = addTotals(res.Totals, b)
		res.Warehouses = append(res.Warehouses, dto.WarehouseStock{WarehouseID: s.WarehouseID, Buckets: b})
	}
	res.Balanced = res.Totals.Sum() == product.TotalOwned
	if !res.Balanced {
		uc.log.Error().
			Str("product_id", productID).
			Int("total_owned", product.TotalOwned).
			Int("buckets", res.Totals.Sum()).
			Msg("suma de buckets distinta de total_owned")
	}
	return res, nil
}

// Logs entradas del log de un producto, más recientes primero.
func (uc *StockUseCase) Logs(ctx context.Context, productID string, page dto.PageRequest) (*dto.InventoryLogListResponse, error) {
	page.DefaultPage()
	entries, err := uc.repos.Logs.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, ToLogResponse(e))
	}
	return &dto.InventoryLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Replay reconstruye los buckets del producto desde el log y los compara con los actuales.
func (uc *StockUseCase) Replay(ctx context.Context, productID string) (*dto.ReplayResponse, error) {
	overview, err := uc.Overview(ctx, productID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repos.Logs.ListAllByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	replayed := bucketMapToTotals(inventory.Replay(productID, entries))
	return &dto.ReplayResponse{
		ProductID:  productID,
		Replayed:   replayed,
		Current:    overview.Totals,
		Consistent: replayed == overview.Totals,
	}, nil
}

func (uc *StockUseCase) eachSerial(ctx context.Context, repos Repos, productID string, ids []string, fn func(*entity.DeviceSerial) error) error {
	for _, id := range ids {
		s, err := uc.serials.Lock(ctx, repos, id)
		if err != nil {
			return err
		}
		if s.ProductID != productID {
			return fmt.Errorf("%w: serial %s no pertenece al producto %s", domain.ErrInvalidInput, s.SerialNumber, productID)
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

func (uc *StockUseCase) bulkMove(ctx context.Context, repos Repos, productID, warehouseID string, from, to inventory.Bucket, qty int, action, note string) error {
	if err := requirePositive(qty); err != nil {
		return err
	}
	warehouseID = warehouseOr(warehouseID, uc.defaultWarehouseID)
	if err := RequireWarehouse(ctx, repos, warehouseID); err != nil {
		return err
	}
	return uc.serials.Move(ctx, repos, Move{
		ProductID:   productID,
		WarehouseID: warehouseID,
		From:        from,
		To:          to,
		Quantity:    qty,
		Action:      action,
		Note:        note,
	})
}
