package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const (
	orderColumns = `id, customer_id, start_date, end_date, actual_return_date, status, total_amount, notes, created_at, updated_at`
	itemColumns  = `id, order_id, product_id, warehouse_id, is_external, external_name, supplier_id, supplier_cost,
		quantity, exported_quantity, returned_quantity, created_at, updated_at`
)

// OrderRepo pedidos y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.CustomerID, o.StartDate, o.EndDate, o.ActualReturnDate, o.Status, o.TotalAmount, o.Notes,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, o.CustomerID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(ctx context.Context, i *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		i.ID, i.OrderID, nullIfEmpty(i.ProductID), nullIfEmpty(i.WarehouseID), i.IsExternal, i.ExternalName,
		nullIfEmpty(i.SupplierID), i.SupplierCost, i.Quantity, i.ExportedQuantity, i.ReturnedQuantity,
		i.CreatedAt, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera del pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera y la bloquea.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerID, &o.StartDate, &o.EndDate, &o.ActualReturnDate,
		&o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListItems líneas en orden de creación.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY seq`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var (
			i                                  entity.OrderItem
			productID, warehouseID, supplierID *string
		)
		if err := rows.Scan(&i.ID, &i.OrderID, &productID, &warehouseID, &i.IsExternal, &i.ExternalName,
			&supplierID, &i.SupplierCost, &i.Quantity, &i.ExportedQuantity, &i.ReturnedQuantity,
			&i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		i.ProductID, i.WarehouseID, i.SupplierID = deref(productID), deref(warehouseID), deref(supplierID)
		list = append(list, &i)
	}
	return list, rows.Err()
}

// UpdateItemProgress persiste cantidades despachadas y devueltas.
func (r *OrderRepo) UpdateItemProgress(ctx context.Context, i *entity.OrderItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE order_items SET exported_quantity = $2, returned_quantity = $3, updated_at = $4
		WHERE id = $1`, i.ID, i.ExportedQuantity, i.ReturnedQuantity, i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %s", domain.ErrNotFound, i.ID)
	}
	return nil
}

// UpdateStatus persiste estado y fecha real de devolución.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, actual_return_date = $3, updated_at = $4
		WHERE id = $1`, o.ID, o.Status, o.ActualReturnDate, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, o.ID)
	}
	return nil
}

// ListCommitments demanda de pedidos BOOKED/ACTIVE solapados (inclusivo) con [start, end].
func (r *OrderRepo) ListCommitments(ctx context.Context, productID string, start, end time.Time, excludeOrderID string) ([]inventory.Commitment, error) {
	query := `
		SELECT o.id, o.start_date, o.end_date, i.quantity
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE i.product_id = $1
		  AND NOT i.is_external
		  AND o.status IN ($2, $3)
		  AND o.start_date <= $5
		  AND o.end_date >= $4
		  AND ($6::uuid IS NULL OR o.id <> $6::uuid)`
	rows, err := r.q.Query(ctx, query, productID,
		entity.OrderStatusBooked, entity.OrderStatusActive,
		inventory.DayOf(start), inventory.DayOf(end), nullIfEmpty(excludeOrderID))
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	defer rows.Close()
	var list []inventory.Commitment
	for rows.Next() {
		var c inventory.Commitment
		if err := rows.Scan(&c.OrderID, &c.StartDate, &c.EndDate, &c.Quantity); err != nil {
			return nil, fmt.Errorf("scan commitment: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
