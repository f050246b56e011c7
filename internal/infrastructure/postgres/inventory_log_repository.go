package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

const logColumns = `id, product_id, warehouse_id, order_id, serial_id, action, from_bucket, to_bucket, quantity, note, created_at`

// InventoryLogRepo log de inventario sobre PostgreSQL. Solo inserta: no hay UPDATE ni DELETE.
// El orden cronológico lo da la columna seq (BIGSERIAL), no created_at.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

// Create persiste una entrada del log.
func (r *InventoryLogRepo) Create(ctx context.Context, e *entity.InventoryLog) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.ProductID, e.WarehouseID, nullIfEmpty(e.OrderID), nullIfEmpty(e.SerialID),
		e.Action, e.FromBucket, e.ToBucket, e.Quantity, e.Note, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inventory log: %w", err)
	}
	return nil
}

func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLog, error) {
	return r.list(ctx,
		`SELECT `+logColumns+` FROM inventory_logs WHERE product_id = $1 ORDER BY seq DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset)
}

func (r *InventoryLogRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM inventory_logs WHERE order_id = $1 ORDER BY seq`, orderID)
}

func (r *InventoryLogRepo) ListAllByProduct(ctx context.Context, productID string) ([]*entity.InventoryLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM inventory_logs WHERE product_id = $1 ORDER BY seq`, productID)
}

func (r *InventoryLogRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryLog, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var (
			e                 entity.InventoryLog
			orderID, serialID *string
		)
		if err := rows.Scan(&e.ID, &e.ProductID, &e.WarehouseID, &orderID, &serialID,
			&e.Action, &e.FromBucket, &e.ToBucket, &e.Quantity, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		e.OrderID, e.SerialID = deref(orderID), deref(serialID)
		list = append(list, &e)
	}
	return list, rows.Err()
}
