package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/internal/domain/service"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// VerifyAffordabilityUseCase re-checks a pending request against a salary
// that was verified out of band.
type VerifyAffordabilityUseCase struct {
	repo      port.ApplicationRepository
	verifier  *service.AffordabilityVerifier
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewVerifyAffordabilityUseCase wires dependencies.
func NewVerifyAffordabilityUseCase(
	repo port.ApplicationRepository,
	verifier *service.AffordabilityVerifier,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *VerifyAffordabilityUseCase {
	return &VerifyAffordabilityUseCase{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       utcNow,
	}
}

// WithClock replaces the wall clock.
func (uc *VerifyAffordabilityUseCase) WithClock(now func() time.Time) *VerifyAffordabilityUseCase {
	uc.now = now
	return uc
}

// Execute checks and records the result.
func (uc *VerifyAffordabilityUseCase) Execute(
	ctx context.Context,
	req dto.VerifyAffordabilityRequest,
) (dto.AffordabilityResponse, error) {
	action := valueobject.ActionVerifyIncome.String()

	app, err := uc.resolve(ctx, req)
	if err != nil {
		return dto.AffordabilityResponse{}, fmt.Errorf("find application: %w", err)
	}
	if err := app.CheckIncomeVerifiable(); err != nil {
		uc.metrics.RecordTransition(ctx, action, transitionOutcome(err))
		return dto.AffordabilityResponse{}, fmt.Errorf("check application: %w", err)
	}

	now := uc.now()
	result, err := uc.verifier.Verify(req.VerifiedSalary, app.Request(), app.Profile(), now)
	if err != nil {
		uc.metrics.RecordTransition(ctx, action, transitionOutcome(err))
		return dto.AffordabilityResponse{}, fmt.Errorf("verify affordability: %w", err)
	}
	app, err = app.RecordAffordability(result, now)
	if err != nil {
		uc.metrics.RecordTransition(ctx, action, transitionOutcome(err))
		return dto.AffordabilityResponse{}, fmt.Errorf("record affordability: %w", err)
	}

	if err := persist(ctx, uc.repo, uc.publisher, uc.logger, app); err != nil {
		return dto.AffordabilityResponse{}, err
	}
	uc.metrics.RecordTransition(ctx, action, port.OutcomeSucceeded)

	uc.logger.InfoContext(ctx, "affordability verified",
		slog.String("application_id", app.ID()),
		slog.String("ratio", result.Ratio.StringFixed(ratioPlaces)),
		slog.Bool("passed", result.Passed),
	)
	return toAffordabilityResponse(app, result), nil
}

// resolve prefers the application id. A customer id picks that customer's
// most recently created application still awaiting an income check.
func (uc *VerifyAffordabilityUseCase) resolve(ctx context.Context, req dto.VerifyAffordabilityRequest) (model.LoanApplication, error) {
	if id := strings.TrimSpace(req.ApplicationID); id != "" {
		return uc.repo.FindByID(ctx, id)
	}
	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		return model.LoanApplication{}, model.NewValidationError("application_id", "application_id or customer_id is required")
	}

	apps, err := uc.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		return model.LoanApplication{}, err
	}
	var (
		latest model.LoanApplication
		found  bool
	)
	for _, app := range apps {
		if app.CheckIncomeVerifiable() != nil {
			continue
		}
		if !found || app.CreatedAt().After(latest.CreatedAt()) {
			latest, found = app, true
		}
	}
	if !found {
		return model.LoanApplication{}, fmt.Errorf("no open application for customer %s: %w", customerID, model.ErrApplicationNotFound)
	}
	return latest, nil
}
