package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

// Availability calcula cuántas unidades de un producto pueden comprometerse en un rango de fechas.
// Lee con los repositorios que recibe: dentro de una tx ve los datos bloqueados por el caller.
type Availability struct{}

// NewAvailability construye la calculadora.
func NewAvailability() *Availability {
	return &Availability{}
}

// Compute = unidades utilizables (sin broken, todas las bodegas) - pico de demanda de los pedidos
// BOOKED/ACTIVE que se solapan con [start, end]. Puede ser negativo (sobre-reserva).
func (a *Availability) Compute(ctx context.Context, repos Repos, productID string, start, end time.Time, excludeOrderID string) (int, error) {
	stocks, err := repos.Stock.ListByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	usable := 0
	for _, s := range stocks {
		usable += s.Usable()
	}
	commitments, err := repos.Orders.ListCommitments(ctx, productID, inventory.DayOf(start), inventory.DayOf(end), excludeOrderID)
	if err != nil {
		return 0, err
	}
	return inventory.AvailableFor(usable, commitments), nil
}
