package orders

import (
	"context"

	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

// DeliveryNoteLine línea de la nota de entrega con datos de producto y seriales comprometidos.
type DeliveryNoteLine struct {
	Item        entity.OrderItem
	ProductCode string
	ProductName string
	Serials     []string
}

// DeliveryNotePDFGenerator puerto de salida para generar la nota de entrega en PDF.
type DeliveryNotePDFGenerator interface {
	GenerateDeliveryNotePDF(ctx context.Context, order *entity.Order, customer *entity.Customer, lines []DeliveryNoteLine) ([]byte, error)
}
