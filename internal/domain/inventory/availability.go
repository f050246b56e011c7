package inventory

import (
	"sort"
	"time"
)

// Commitment demanda de un pedido BOOKED/ACTIVE sobre un producto en un rango de días inclusivo.
type Commitment struct {
	OrderID   string
	StartDate time.Time
	EndDate   time.Time
	Quantity  int
}

// DayOf trunca t al día calendario en UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps prueba de solapamiento inclusivo-inclusivo: startA <= endB && endA >= startB.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return !DayOf(startA).After(DayOf(endB)) && !DayOf(endA).Before(DayOf(startB))
}

type demandEvent struct {
	at    time.Time
	delta int
}

// PeakDemand máxima demanda simultánea de un conjunto de compromisos.
// Cada compromiso suma su cantidad el día de inicio y la resta el día siguiente a su fin
// (la unidad está ocupada durante todo el día de devolución). Todos los eventos de un mismo
// día se aplican antes de leer el acumulado.
func PeakDemand(commitments []Commitment) int {
	events := make([]demandEvent, 0, len(commitments)*2)
	for _, c := range commitments {
		if c.Quantity <= 0 {
			continue
		}
		events = append(events,
			demandEvent{at: DayOf(c.StartDate), delta: c.Quantity},
			demandEvent{at: DayOf(c.EndDate).AddDate(0, 0, 1), delta: -c.Quantity},
		)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

	current, peak := 0, 0
	for i := 0; i < len(events); {
		at := events[i].at
		for i < len(events) && events[i].at.Equal(at) {
			current += events[i].delta
			i++
		}
		if current > peak {
			peak = current
		}
	}
	return peak
}

// AvailableFor unidades prometibles: totalUsable - pico de demanda. Puede ser negativo.
func AvailableFor(totalUsable int, commitments []Commitment) int {
	return totalUsable - PeakDemand(commitments)
}
