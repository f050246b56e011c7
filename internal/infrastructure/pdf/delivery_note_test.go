package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "900", formatMoney("900"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}

func TestGenerateDeliveryNotePDF_ProduceUnPDF(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	order := &entity.Order{
		ID:          "4f2c9a10-0000-0000-0000-000000000000",
		Status:      entity.OrderStatusActive,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		TotalAmount: decimal.NewFromInt(360000),
	}
	customer := &entity.Customer{Name: "Eventos del Valle", DocumentID: "900123456"}
	lines := []orders.DeliveryNoteLine{
		{Item: entity.OrderItem{Quantity: 2, ExportedQuantity: 2}, ProductCode: "CAM-4K", ProductName: "Cámara 4K", Serials: []string{"SN-1", "SN-2"}},
		{Item: entity.OrderItem{Quantity: 1, IsExternal: true}, ProductName: "Planta eléctrica"},
	}

	out, err := NewDeliveryNoteGenerator("Rental Pro").GenerateDeliveryNotePDF(context.Background(), order, customer, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
