package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
)

// StartApplicationUseCase opens a NOT_STARTED application for a customer.
type StartApplicationUseCase struct {
	directory port.CustomerDirectory
	catalog   port.OfferCatalog
	repo      port.ApplicationRepository
	publisher port.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewStartApplicationUseCase wires dependencies.
func NewStartApplicationUseCase(
	directory port.CustomerDirectory,
	catalog port.OfferCatalog,
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *StartApplicationUseCase {
	return &StartApplicationUseCase{
		directory: directory,
		catalog:   catalog,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       utcNow,
	}
}

// WithClock replaces the wall clock.
func (uc *StartApplicationUseCase) WithClock(now func() time.Time) *StartApplicationUseCase {
	uc.now = now
	return uc
}

// Execute opens the application and returns it.
func (uc *StartApplicationUseCase) Execute(ctx context.Context, req dto.StartApplicationRequest) (dto.ApplicationResponse, error) {
	// 1. Snapshot the customer's profile and offer.
	profile, err := loadProfile(ctx, uc.directory, uc.catalog, req.CustomerID)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("load profile: %w", err)
	}

	// 2. Create the aggregate.
	app, err := model.NewLoanApplication(profile, uc.now())
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("create application: %w", err)
	}

	// 3. Persist and publish.
	if err := persist(ctx, uc.repo, uc.publisher, uc.logger, app); err != nil {
		return dto.ApplicationResponse{}, err
	}

	uc.logger.InfoContext(ctx, "application started",
		slog.String("application_id", app.ID()),
		slog.String("customer_id", app.CustomerID()),
	)
	return toApplicationResponse(app), nil
}
