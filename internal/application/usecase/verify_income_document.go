package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/internal/domain/service"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// VerifyIncomeDocumentUseCase reads a salary figure out of an uploaded
// income proof and runs the affordability check with it.
type VerifyIncomeDocumentUseCase struct {
	repo      port.ApplicationRepository
	extractor port.DocumentTextExtractor
	parser    *service.IncomeDocumentParser
	verifier  *service.AffordabilityVerifier
	publisher port.EventPublisher
	metrics   port.MetricsRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewVerifyIncomeDocumentUseCase wires dependencies.
func NewVerifyIncomeDocumentUseCase(
	repo port.ApplicationRepository,
	extractor port.DocumentTextExtractor,
	parser *service.IncomeDocumentParser,
	verifier *service.AffordabilityVerifier,
	publisher port.EventPublisher,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *VerifyIncomeDocumentUseCase {
	return &VerifyIncomeDocumentUseCase{
		repo:      repo,
		extractor: extractor,
		parser:    parser,
		verifier:  verifier,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       utcNow,
	}
}

// WithClock replaces the wall clock.
func (uc *VerifyIncomeDocumentUseCase) WithClock(now func() time.Time) *VerifyIncomeDocumentUseCase {
	uc.now = now
	return uc
}

// Execute records the affordability result on the application. A failed
// check is still recorded and returned with Passed false.
func (uc *VerifyIncomeDocumentUseCase) Execute(
	ctx context.Context,
	req dto.VerifyIncomeDocumentRequest,
) (dto.AffordabilityResponse, error) {
	action := valueobject.ActionVerifyIncome.String()

	// 1. Load the application and make sure it can take a result.
	app, err := uc.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		return dto.AffordabilityResponse{}, fmt.Errorf("find application: %w", err)
	}
	if err := app.CheckIncomeVerifiable(); err != nil {
		uc.metrics.RecordTransition(ctx, action, transitionOutcome(err))
		return dto.AffordabilityResponse{}, fmt.Errorf("check application: %w", err)
	}

	// 2. Document to text to income.
	text, err := uc.extractor.Extract(ctx, model.Document{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Content:     req.Content,
	})
	if err != nil {
		return dto.AffordabilityResponse{}, fmt.Errorf("extract document text: %w", err)
	}
	income, err := uc.parser.Parse(text)
	if err != nil {
		uc.metrics.RecordIncomeExtraction(ctx, tierNone, false)
		return dto.AffordabilityResponse{}, fmt.Errorf("parse income: %w", err)
	}
	uc.metrics.RecordIncomeExtraction(ctx, income.ConfidenceTier.String(), income.Fallback)

	// 3. Affordability against the extracted figure.
	now := uc.now()
	result, err := uc.verifier.Verify(income.Amount, app.Request(), app.Profile(), now)
	if err != nil {
		uc.metrics.RecordTransition(ctx, action, transitionOutcome(err))
		return dto.AffordabilityResponse{}, fmt.Errorf("verify affordability: %w", err)
	}
	result.Income = &income

	app, err = app.RecordAffordability(result, now)
	if err != nil {
		uc.metrics.RecordTransition(ctx, action, transitionOutcome(err))
		return dto.AffordabilityResponse{}, fmt.Errorf("record affordability: %w", err)
	}

	// 4. Persist and publish.
	if err := persist(ctx, uc.repo, uc.publisher, uc.logger, app); err != nil {
		return dto.AffordabilityResponse{}, err
	}
	uc.metrics.RecordTransition(ctx, action, port.OutcomeSucceeded)

	uc.logger.InfoContext(ctx, "income document verified",
		slog.String("application_id", app.ID()),
		slog.String("confidence_tier", income.ConfidenceTier.String()),
		slog.Bool("fallback", income.Fallback),
		slog.Bool("passed", result.Passed),
	)
	return toAffordabilityResponse(app, result), nil
}
