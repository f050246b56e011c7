package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func TestPeakDemand_PedidosDisjuntosNoSeSuman(t *testing.T) {
	commitments := []inventory.Commitment{
		{OrderID: "A", StartDate: day(1, 1), EndDate: day(1, 2), Quantity: 5},
		{OrderID: "B", StartDate: day(1, 8), EndDate: day(1, 9), Quantity: 5},
	}

	assert.Equal(t, 5, inventory.PeakDemand(commitments))
	assert.Equal(t, 5, inventory.AvailableFor(10, commitments))
}

func TestPeakDemand_TresSolapadosSinContencion(t *testing.T) {
	// Ningún par contiene al otro, pero los tres coinciden el 5 de enero.
	commitments := []inventory.Commitment{
		{OrderID: "A", StartDate: day(1, 1), EndDate: day(1, 5), Quantity: 2},
		{OrderID: "B", StartDate: day(1, 3), EndDate: day(1, 7), Quantity: 3},
		{OrderID: "C", StartDate: day(1, 5), EndDate: day(1, 9), Quantity: 4},
	}

	assert.Equal(t, 9, inventory.PeakDemand(commitments))
}

func TestPeakDemand_DiaDeDevolucionEsInclusivo(t *testing.T) {
	a := inventory.Commitment{OrderID: "A", StartDate: day(1, 1), EndDate: day(1, 5), Quantity: 5}

	// Consulta [5 ene, 5 ene]: A sigue ocupando la unidad ese día.
	assert.Equal(t, 0, inventory.AvailableFor(5, []inventory.Commitment{a}))

	// Un pedido que empieza el mismo día en que A termina se suma a A ese día.
	b := inventory.Commitment{OrderID: "B", StartDate: day(1, 5), EndDate: day(1, 7), Quantity: 5}
	assert.Equal(t, 10, inventory.PeakDemand([]inventory.Commitment{a, b}))

	// Un pedido que empieza el día siguiente ya no coincide con A.
	c := inventory.Commitment{OrderID: "C", StartDate: day(1, 6), EndDate: day(1, 7), Quantity: 5}
	assert.Equal(t, 5, inventory.PeakDemand([]inventory.Commitment{a, c}))
}

func TestPeakDemand_SinCompromisos(t *testing.T) {
	assert.Equal(t, 0, inventory.PeakDemand(nil))
	assert.Equal(t, 7, inventory.AvailableFor(7, nil))
}

func TestAvailableFor_PuedeSerNegativo(t *testing.T) {
	commitments := []inventory.Commitment{
		{OrderID: "A", StartDate: day(2, 1), EndDate: day(2, 3), Quantity: 8},
	}
	assert.Equal(t, -3, inventory.AvailableFor(5, commitments))
}

func TestAvailableFor_Monotonia(t *testing.T) {
	base := []inventory.Commitment{
		{OrderID: "A", StartDate: day(3, 1), EndDate: day(3, 4), Quantity: 2},
	}
	before := inventory.AvailableFor(10, base)
	more := append(base, inventory.Commitment{OrderID: "B", StartDate: day(3, 4), EndDate: day(3, 6), Quantity: 1})

	assert.LessOrEqual(t, inventory.AvailableFor(10, more), before)
}

func TestPeakDemand_IgnoraHoraDelDia(t *testing.T) {
	a := inventory.Commitment{OrderID: "A", StartDate: day(1, 1).Add(18 * time.Hour), EndDate: day(1, 5).Add(23 * time.Hour), Quantity: 3}
	b := inventory.Commitment{OrderID: "B", StartDate: day(1, 6).Add(time.Hour), EndDate: day(1, 8), Quantity: 3}

	assert.Equal(t, 3, inventory.PeakDemand([]inventory.Commitment{a, b}))
}

func TestOverlaps_Inclusivo(t *testing.T) {
	assert.True(t, inventory.Overlaps(day(1, 1), day(1, 5), day(1, 5), day(1, 9)))
	assert.False(t, inventory.Overlaps(day(1, 1), day(1, 5), day(1, 6), day(1, 9)))
	assert.True(t, inventory.Overlaps(day(1, 3), day(1, 3), day(1, 1), day(1, 9)))
}
