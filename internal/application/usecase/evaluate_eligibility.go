package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/internal/domain/service"
)

// EvaluateEligibilityUseCase prices a hypothetical request for a customer
// without opening or changing any application.
type EvaluateEligibilityUseCase struct {
	directory port.CustomerDirectory
	catalog   port.OfferCatalog
	evaluator *service.EligibilityEvaluator
	metrics   port.MetricsRecorder
	logger    *slog.Logger
}

// NewEvaluateEligibilityUseCase wires dependencies.
func NewEvaluateEligibilityUseCase(
	directory port.CustomerDirectory,
	catalog port.OfferCatalog,
	evaluator *service.EligibilityEvaluator,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *EvaluateEligibilityUseCase {
	return &EvaluateEligibilityUseCase{
		directory: directory,
		catalog:   catalog,
		evaluator: evaluator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute returns the decision. A policy rejection is a decision, not an
// error; errors are reserved for malformed requests and upstream failures.
func (uc *EvaluateEligibilityUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateEligibilityRequest,
) (dto.EligibilityResponse, error) {
	// 1. Load the profile snapshot.
	profile, err := loadProfile(ctx, uc.directory, uc.catalog, req.CustomerID)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("load profile: %w", err)
	}

	// 2. Apply the rules.
	decision, err := uc.evaluator.Evaluate(model.LoanRequest{Amount: req.Amount, TenureMonths: req.TenureMonths}, profile)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("evaluate eligibility: %w", err)
	}

	uc.metrics.RecordEligibility(ctx, decision.ApprovalType.String(), decision.Reason)
	uc.logger.InfoContext(ctx, "eligibility evaluated",
		slog.String("customer_id", profile.CustomerID),
		slog.String("approval_type", decision.ApprovalType.String()),
		slog.String("reason", decision.Reason),
	)

	return toEligibilityResponse(decision, profile), nil
}
