package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/rental-inventory-api/pkg/metrics"
)

// SerialUseCase alta, baja y consulta de seriales.
type SerialUseCase struct {
	tx                 TxRunner
	repos              Repos
	registry           *SerialRegistry
	defaultWarehouseID string
	log                zerolog.Logger
	metrics            *metrics.Recorder
}

// NewSerialUseCase construye el caso de uso.
func NewSerialUseCase(tx TxRunner, repos Repos, registry *SerialRegistry, defaultWarehouseID string, log zerolog.Logger, rec *metrics.Recorder) *SerialUseCase {
	return &SerialUseCase{
		tx:                 tx,
		repos:              repos,
		registry:           registry,
		defaultWarehouseID: defaultWarehouseID,
		log:                log,
		metrics:            rec,
	}
}

// Add registra una unidad nueva AVAILABLE; suma 1 a available y a total_owned.
func (uc *SerialUseCase) Add(ctx context.Context, in dto.CreateSerialRequest) (res *dto.SerialResponse, err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveOperation("serial_add", started, err) }()

	if in.SerialNumber == "" {
		return nil, fmt.Errorf("%w: serial_number requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	s := &entity.DeviceSerial{
		ID:           uuid.New().String(),
		ProductID:    in.ProductID,
		WarehouseID:  warehouseOr(in.WarehouseID, uc.defaultWarehouseID),
		SerialNumber: in.SerialNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(repos Repos) error {
		if _, err := LockProduct(ctx, repos, s.ProductID); err != nil {
			return err
		}
		if err := RequireWarehouse(ctx, repos, s.WarehouseID); err != nil {
			return err
		}
		return uc.registry.Add(ctx, repos, s)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("serial", s.SerialNumber).Str("product_id", s.ProductID).Msg("serial registrado")
	return toSerialResponse(s), nil
}

// Delete elimina un serial AVAILABLE; resta 1 a available y a total_owned.
func (uc *SerialUseCase) Delete(ctx context.Context, id string) (err error) {
	started := time.Now()
	defer func() { uc.metrics.ObserveOperation("serial_delete", started, err) }()

	current, err := uc.repos.Serials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("%w: serial %s", domain.ErrNotFound, id)
	}
	err = uc.tx.Run(ctx, func(repos Repos) error {
		if _, err := LockProduct(ctx, repos, current.ProductID); err != nil {
			return err
		}
		s, err := uc.registry.Lock(ctx, repos, id)
		if err != nil {
			return err
		}
		return uc.registry.Delete(ctx, repos, s)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("serial", current.SerialNumber).Str("product_id", current.ProductID).Msg("serial eliminado")
	return nil
}

// List seriales de un producto, opcionalmente por bodega y estado.
func (uc *SerialUseCase) List(ctx context.Context, q dto.SerialListQuery) ([]dto.SerialResponse, error) {
	list, err := uc.repos.Serials.List(ctx, repository.SerialFilter{
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		Status:      q.Status,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerialResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSerialResponse(s))
	}
	return out, nil
}
