package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ExportaContadoresEHistograma(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.ObserveOperation("ship", time.Now().Add(-50*time.Millisecond), nil)
	rec.ObserveOperation("ship", time.Now(), errors.New("boom"))
	rec.AddLedgerMove("reserved", "onRent", 3)
	rec.AddLedgerMove("", "available", 2)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "rental_operations_total", map[string]string{"operation": "ship", "outcome": OutcomeSuccess})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "rental_operations_total", map[string]string{"operation": "ship", "outcome": OutcomeFailure})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "rental_ledger_moves_total", map[string]string{"from": "reserved", "to": "onRent"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	got, err = counterValue(mfs, "rental_ledger_moves_total", map[string]string{"from": "external", "to": "available"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestRecorder_NilEsInerte(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.ObserveOperation("ship", time.Now(), nil)
		rec.AddLedgerMove("available", "reserved", 1)
	})
	assert.NotPanics(t, func() {
		NewRecorder(nil).ObserveOperation("ship", time.Now(), nil)
	})
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if matchLabels(m.GetLabel(), labels) {
				return m.GetCounter().GetValue(), nil
			}
		}
	}
	return 0, fmt.Errorf("metric %q %v not found", name, labels)
}

func matchLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}
