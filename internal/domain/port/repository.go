package port

import (
	"context"

	"github.com/bibbank/loan-origination/internal/domain/event"
	"github.com/bibbank/loan-origination/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// ApplicationRepository persists and retrieves loan applications.
//
// Save stores the application if the stored version still equals
// app.Version() (zero for a new application) and bumps it; otherwise it
// fails with model.ErrConcurrentModification. FindByID returns
// model.ErrApplicationNotFound for unknown ids.
type ApplicationRepository interface {
	Save(ctx context.Context, app model.LoanApplication) error
	FindByID(ctx context.Context, id string) (model.LoanApplication, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]model.LoanApplication, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Metrics port
// ---------------------------------------------------------------------------

// Transition outcomes reported to MetricsRecorder.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeBlocked   = "blocked"
	OutcomeFailed    = "failed"
)

// MetricsRecorder counts engine decisions.
type MetricsRecorder interface {
	RecordEligibility(ctx context.Context, approvalType, reason string)
	RecordIncomeExtraction(ctx context.Context, tier string, fallback bool)
	RecordTransition(ctx context.Context, action, outcome string)
}
