package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
)

type capturingPDF struct {
	customer *entity.Customer
	lines    []orders.DeliveryNoteLine
}

func (c *capturingPDF) GenerateDeliveryNotePDF(_ context.Context, _ *entity.Order, customer *entity.Customer, lines []orders.DeliveryNoteLine) ([]byte, error) {
	c.customer = customer
	c.lines = lines
	return []byte("%PDF-1.4"), nil
}

func TestDeliveryNote_IncluyeSerialesYLineasExternas(t *testing.T) {
	gen := &capturingPDF{}
	f := newFixture(t, gen)
	p := f.product(t, "CAM", 0)
	s := f.serial(t, p, "CAM-77")
	o := f.order(t, "2025-07-01", "2025-07-02",
		line(p, 1),
		dto.CreateOrderItemRequest{IsExternal: true, ExternalName: "Grúa telescópica", Quantity: 1},
	)
	_, err := f.orders.Prepare(f.ctx, o.ID, dto.PrepareRequest{ProductID: p, SerialIDs: []string{s}})
	require.NoError(t, err)

	pdf, filename, err := f.orders.DeliveryNote(f.ctx, o.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, "nota_entrega_"+o.ID+".pdf", filename)

	require.NotNil(t, gen.customer)
	assert.Equal(t, "Eventos del Valle", gen.customer.Name)
	require.Len(t, gen.lines, 2)
	assert.Equal(t, "Equipo CAM", gen.lines[0].ProductName)
	assert.Equal(t, []string{"CAM-77"}, gen.lines[0].Serials)
	assert.Equal(t, "Grúa telescópica", gen.lines[1].ProductName)
}

func TestDeliveryNote_SinGenerador(t *testing.T) {
	f := newFixture(t, nil)
	p := f.product(t, "X", 1)
	o := f.order(t, "2025-07-01", "2025-07-02", line(p, 1))

	_, _, err := f.orders.DeliveryNote(f.ctx, o.ID)
	assert.ErrorIs(t, err, orders.ErrDeliveryNoteDisabled)
}

func TestDeliveryNote_PedidoInexistente(t *testing.T) {
	f := newFixture(t, &capturingPDF{})
	_, _, err := f.orders.DeliveryNote(f.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
