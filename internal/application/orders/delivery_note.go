package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/repository"
)

// ErrDeliveryNoteDisabled no hay generador de PDF configurado.
var ErrDeliveryNoteDisabled = errors.New("generación de nota de entrega no disponible")

// DeliveryNote genera el PDF de la nota de entrega del pedido.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrOrderNotFound    si el pedido no existe.
func (uc *UseCase) DeliveryNote(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", ErrDeliveryNoteDisabled
	}

	// ── 1. Pedido y líneas ────────────────────────────────────────────────────
	order, err := uc.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("nota de entrega: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	items, err := uc.repos.Orders.ListItems(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("nota de entrega: obtener líneas: %w", err)
	}

	// ── 2. Cliente ────────────────────────────────────────────────────────────
	customer, err := uc.customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("nota de entrega: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", fmt.Errorf("%w: cliente %s", domain.ErrNotFound, order.CustomerID)
	}

	// ── 3. Enriquecer líneas con producto y seriales del pedido ───────────────
	lines := make([]DeliveryNoteLine, 0, len(items))
	for _, it := range items {
		line := DeliveryNoteLine{Item: *it, ProductName: it.ExternalName}
		if !it.IsExternal {
			line.ProductName = "Producto " + it.ProductID
			if p, pErr := uc.repos.Products.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
				line.ProductCode = p.Code
				line.ProductName = p.Name
			}
			serials, sErr := uc.repos.Serials.List(ctx, repository.SerialFilter{OrderID: orderID, ProductID: it.ProductID})
			if sErr != nil {
				return nil, "", fmt.Errorf("nota de entrega: obtener seriales: %w", sErr)
			}
			for _, s := range serials {
				line.Serials = append(line.Serials, s.SerialNumber)
			}
		}
		lines = append(lines, line)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.pdf.GenerateDeliveryNotePDF(ctx, order, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("nota de entrega: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("nota_entrega_%s.pdf", order.ID), nil
}
