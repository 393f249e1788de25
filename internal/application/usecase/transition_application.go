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

// TransitionApplicationUseCase applies one lifecycle action to an
// application. Each action runs against the stored state; nothing is
// saved unless the aggregate accepts the transition.
type TransitionApplicationUseCase struct {
	repo         port.ApplicationRepository
	evaluator    *service.EligibilityEvaluator
	verifier     *service.AffordabilityVerifier
	assembler    *service.SanctionAssembler
	identity     port.IdentityVerifier
	publisher    port.EventPublisher
	metrics      port.MetricsRecorder
	logger       *slog.Logger
	now          func() time.Time
	newReference service.ReferenceGenerator
}

// NewTransitionApplicationUseCase wires dependencies.
func NewTransitionApplicationUseCase(
	repo port.ApplicationRepository,
	evaluator *service.EligibilityEvaluator,
	verifier *service.AffordabilityVerifier,
	assembler *service.SanctionAssembler,
	identity port.IdentityVerifier,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *TransitionApplicationUseCase {
	return &TransitionApplicationUseCase{
		repo:         repo,
		evaluator:    evaluator,
		verifier:     verifier,
		assembler:    assembler,
		identity:     identity,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
		now:          utcNow,
		newReference: service.NewReference,
	}
}

// WithClock replaces the wall clock.
func (uc *TransitionApplicationUseCase) WithClock(now func() time.Time) *TransitionApplicationUseCase {
	uc.now = now
	return uc
}

// WithReferenceGenerator replaces the approval reference generator.
func (uc *TransitionApplicationUseCase) WithReferenceGenerator(gen service.ReferenceGenerator) *TransitionApplicationUseCase {
	uc.newReference = gen
	return uc
}

// Execute applies req.Action and returns the updated application.
func (uc *TransitionApplicationUseCase) Execute(ctx context.Context, req dto.TransitionRequest) (dto.ApplicationResponse, error) {
	action, err := valueobject.NewLifecycleAction(strings.ToUpper(strings.TrimSpace(req.Action)))
	if err != nil {
		return dto.ApplicationResponse{}, model.NewValidationError("action", "%q is not a lifecycle action", req.Action)
	}

	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("find application: %w", err)
	}

	next, err := uc.apply(ctx, app, action, req, uc.now())
	uc.metrics.RecordTransition(ctx, action.String(), transitionOutcome(err))
	if err != nil {
		uc.logger.WarnContext(ctx, "transition refused",
			slog.String("application_id", app.ID()),
			slog.String("action", action.String()),
			slog.String("status", app.Status().String()),
			slog.String("error", err.Error()),
		)
		return dto.ApplicationResponse{}, fmt.Errorf("%s: %w", strings.ToLower(action.String()), err)
	}

	if err := persist(ctx, uc.repo, uc.publisher, uc.logger, next); err != nil {
		return dto.ApplicationResponse{}, err
	}

	uc.logger.InfoContext(ctx, "application transitioned",
		slog.String("application_id", next.ID()),
		slog.String("action", action.String()),
		slog.String("from", app.Status().String()),
		slog.String("to", next.Status().String()),
	)
	return toApplicationResponse(next), nil
}

func (uc *TransitionApplicationUseCase) apply(
	ctx context.Context,
	app model.LoanApplication,
	action valueobject.LifecycleAction,
	req dto.TransitionRequest,
	now time.Time,
) (model.LoanApplication, error) {
	switch action {
	case valueobject.ActionInitiate:
		loan := model.LoanRequest{
			Amount:       req.Amount,
			TenureMonths: req.TenureMonths,
			Purpose:      strings.TrimSpace(req.Purpose),
		}
		decision, err := uc.evaluator.Evaluate(loan, app.Profile())
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("evaluate eligibility: %w", err)
		}
		uc.metrics.RecordEligibility(ctx, decision.ApprovalType.String(), decision.Reason)
		return app.Initiate(loan, decision, now)

	case valueobject.ActionVerifyKYC:
		// The status guard fires before the checks are read, so the
		// identity service is only consulted for an INITIATED application.
		if !app.Status().Equal(valueobject.ApplicationStatusInitiated) {
			return app.VerifyKYC(model.IdentityChecks{}, now)
		}
		checks, err := uc.identity.Check(ctx, app.CustomerID())
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("check identity: %w", err)
		}
		return app.VerifyKYC(checks, now)

	case valueobject.ActionVerifyIncome:
		if err := app.CheckIncomeVerifiable(); err != nil {
			return model.LoanApplication{}, err
		}
		result, err := uc.verifier.Verify(req.VerifiedSalary, app.Request(), app.Profile(), now)
		if err != nil {
			return model.LoanApplication{}, fmt.Errorf("verify affordability: %w", err)
		}
		return app.RecordAffordability(result, now)

	case valueobject.ActionApprove:
		return app.Approve(uc.newReference(service.ApprovalReferencePrefix, now), now)

	case valueobject.ActionReject:
		return app.Reject(req.Reason, now)

	case valueobject.ActionGenerateSanction:
		letter, err := uc.assembler.Assemble(app, now)
		if err != nil {
			return model.LoanApplication{}, err
		}
		return app.AttachSanction(letter, now)

	case valueobject.ActionAcceptSanction:
		return app.AcceptSanction(req.Accepted, now)
	}
	return model.LoanApplication{}, model.NewValidationError("action", "%q is not a lifecycle action", action.String())
}
