// Package memory implementa los puertos de persistencia en memoria. Lo usan las pruebas de los
// casos de uso y DB_DRIVER=memory. Las transacciones se serializan con un mutex global y
// trabajan sobre una copia del estado que solo se publica en el commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type stockKey struct {
	productID   string
	warehouseID string
}

type state struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	customers  map[string]entity.Customer
	suppliers  map[string]entity.Supplier
	stock      map[stockKey]entity.Stock
	serials    map[string]entity.DeviceSerial
	orders     map[string]entity.Order
	items      map[string]entity.OrderItem
	orderItems map[string][]string // orden de inserción de las líneas por pedido
	logs       []entity.InventoryLog
}

func newState() *state {
	return &state{
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		customers:  map[string]entity.Customer{},
		suppliers:  map[string]entity.Supplier{},
		stock:      map[stockKey]entity.Stock{},
		serials:    map[string]entity.DeviceSerial{},
		orders:     map[string]entity.Order{},
		items:      map[string]entity.OrderItem{},
		orderItems: map[string][]string{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.serials {
		c.serials[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = append([]string(nil), v...)
	}
	c.logs = append([]entity.InventoryLog(nil), s.logs...)
	return c
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.Mutex
	data *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState()}
}

// view acceso a un estado: el de una transacción abierta (tx != nil, el mutex ya está tomado)
// o el publicado, tomando el mutex en cada operación.
type view struct {
	store *Store
	tx    *state
}

func (v *view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func (s *Store) repos(v *view) inventory.Repos {
	return inventory.Repos{
		Stock:      &StockRepo{v: v},
		Products:   &ProductRepo{v: v},
		Warehouses: &WarehouseRepo{v: v},
		Serials:    &SerialRepo{v: v},
		Orders:     &OrderRepo{v: v},
		Logs:       &InventoryLogRepo{v: v},
	}
}

// Repos repositorios fuera de transacción.
func (s *Store) Repos() inventory.Repos {
	return s.repos(&view{store: s})
}

// Customers repositorio de clientes.
func (s *Store) Customers() repository.CustomerRepository {
	return &CustomerRepo{v: &view{store: s}}
}

// Suppliers repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository {
	return &SupplierRepo{v: &view{store: s}}
}

// Run ejecuta fn sobre una copia del estado; si fn no falla la copia reemplaza al estado publicado.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.data.clone()
	if err := fn(s.repos(&view{store: s, tx: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}
