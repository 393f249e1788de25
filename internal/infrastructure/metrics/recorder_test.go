package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/bibbank/loan-origination/internal/domain/port"
)

func newRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := NewRecorder(provider.Meter("origination"))
	require.NoError(t, err)
	return rec, reader
}

// counts collects every data point of the named counter keyed by its
// attribute set encoding.
func counts(t *testing.T, reader *sdkmetric.ManualReader, name string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is %T", name, m.Data)
			for _, dp := range sum.DataPoints {
				out[dp.Attributes.Encoded(attribute.DefaultEncoder())] = dp.Value
			}
		}
	}
	return out
}

func TestRecorder_Eligibility(t *testing.T) {
	rec, reader := newRecorder(t)
	ctx := context.Background()

	rec.RecordEligibility(ctx, "INSTANT", "within pre-approved limit")
	rec.RecordEligibility(ctx, "INSTANT", "within pre-approved limit")
	rec.RecordEligibility(ctx, "REJECTED", "credit score below minimum")

	got := counts(t, reader, EligibilityDecisionsTotal)
	assert.Equal(t, int64(2), got["approval_type=INSTANT,reason=within pre-approved limit"])
	assert.Equal(t, int64(1), got["approval_type=REJECTED,reason=credit score below minimum"])
}

func TestRecorder_IncomeExtraction(t *testing.T) {
	rec, reader := newRecorder(t)

	rec.RecordIncomeExtraction(context.Background(), "very_high", false)
	rec.RecordIncomeExtraction(context.Background(), "low", true)

	got := counts(t, reader, IncomeExtractionsTotal)
	assert.Equal(t, int64(1), got["confidence_tier=very_high,fallback=false"])
	assert.Equal(t, int64(1), got["confidence_tier=low,fallback=true"])
}

func TestRecorder_Transitions(t *testing.T) {
	rec, reader := newRecorder(t)
	ctx := context.Background()

	rec.RecordTransition(ctx, "APPROVE", port.OutcomeSucceeded)
	rec.RecordTransition(ctx, "APPROVE", port.OutcomeBlocked)
	rec.RecordTransition(ctx, "APPROVE", port.OutcomeBlocked)

	got := counts(t, reader, LifecycleTransitionsTotal)
	assert.Equal(t, int64(1), got["action=APPROVE,outcome=succeeded"])
	assert.Equal(t, int64(2), got["action=APPROVE,outcome=blocked"])
}

func TestNoop(t *testing.T) {
	var rec port.MetricsRecorder = Noop{}
	rec.RecordTransition(context.Background(), "REJECT", port.OutcomeSucceeded)
}
