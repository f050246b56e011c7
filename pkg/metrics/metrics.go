package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados posibles de una operación.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder agrupa los colectores de operaciones de inventario y pedidos.
// Un Recorder nil (o sin registrar) ignora todas las observaciones.
type Recorder struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	moves      *prometheus.CounterVec
}

// NewRecorder registra los colectores en reg. Con reg nil devuelve un Recorder inerte.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		return &Recorder{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_operations_total",
		Help: "Operaciones de inventario y ciclo de vida de pedidos por resultado.",
	}, []string{"operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_operation_duration_seconds",
		Help:    "Duración de las operaciones transaccionales en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	moves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_ledger_moves_total",
		Help: "Unidades movidas entre buckets del libro de stock.",
	}, []string{"from", "to"})
	reg.MustRegister(operations, duration, moves)
	return &Recorder{operations: operations, duration: duration, moves: moves}
}

// ObserveOperation registra resultado y duración de una operación.
func (r *Recorder) ObserveOperation(operation string, started time.Time, err error) {
	if r == nil || r.operations == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	op := normalizeLabel(operation)
	r.operations.WithLabelValues(op, outcome).Inc()
	r.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// AddLedgerMove suma qty unidades movidas entre dos buckets ("" = fuera del inventario).
func (r *Recorder) AddLedgerMove(from, to string, qty int) {
	if r == nil || r.moves == nil || qty <= 0 {
		return
	}
	r.moves.WithLabelValues(normalizeBucket(from), normalizeBucket(to)).Add(float64(qty))
}

func normalizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func normalizeBucket(s string) string {
	if s == "" {
		return "external"
	}
	return s
}
