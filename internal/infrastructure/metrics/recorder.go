package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/loan-origination/internal/domain/port"
)

// Instrument names as exported to Prometheus.
const (
	EligibilityDecisionsTotal = "origination_eligibility_decisions_total"
	IncomeExtractionsTotal    = "origination_income_extractions_total"
	LifecycleTransitionsTotal = "origination_lifecycle_transitions_total"
)

var _ port.MetricsRecorder = (*Recorder)(nil)

// Recorder implements port.MetricsRecorder with OpenTelemetry counters.
type Recorder struct {
	eligibility metric.Int64Counter
	extractions metric.Int64Counter
	transitions metric.Int64Counter
}

// NewRecorder registers the engine's counters on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	eligibility, err := meter.Int64Counter(EligibilityDecisionsTotal,
		metric.WithDescription("Eligibility decisions by approval type and reason."))
	if err != nil {
		return nil, fmt.Errorf("eligibility counter: %w", err)
	}
	extractions, err := meter.Int64Counter(IncomeExtractionsTotal,
		metric.WithDescription("Income figures extracted from documents by confidence tier."))
	if err != nil {
		return nil, fmt.Errorf("extraction counter: %w", err)
	}
	transitions, err := meter.Int64Counter(LifecycleTransitionsTotal,
		metric.WithDescription("Lifecycle actions by outcome."))
	if err != nil {
		return nil, fmt.Errorf("transition counter: %w", err)
	}
	return &Recorder{eligibility: eligibility, extractions: extractions, transitions: transitions}, nil
}

func (r *Recorder) RecordEligibility(ctx context.Context, approvalType, reason string) {
	r.eligibility.Add(ctx, 1, metric.WithAttributes(
		attribute.String("approval_type", approvalType),
		attribute.String("reason", reason),
	))
}

func (r *Recorder) RecordIncomeExtraction(ctx context.Context, tier string, fallback bool) {
	r.extractions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("confidence_tier", tier),
		attribute.Bool("fallback", fallback),
	))
}

func (r *Recorder) RecordTransition(ctx context.Context, action, outcome string) {
	r.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

// Noop discards everything. It serves tools that run the engine without a
// metrics endpoint.
type Noop struct{}

func (Noop) RecordEligibility(context.Context, string, string)    {}
func (Noop) RecordIncomeExtraction(context.Context, string, bool) {}
func (Noop) RecordTransition(context.Context, string, string)     {}
