package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port"
)

func utcNow() time.Time { return time.Now().UTC() }

// loadProfile joins the customer's directory record with their offer.
func loadProfile(
	ctx context.Context,
	directory port.CustomerDirectory,
	catalog port.OfferCatalog,
	customerID string,
) (model.CustomerProfile, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return model.CustomerProfile{}, model.NewValidationError("customer_id", "is required")
	}

	customer, err := directory.GetCustomer(ctx, customerID)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("get customer: %w", err)
	}
	offer, err := catalog.GetOffer(ctx, customerID)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("get offer: %w", err)
	}
	profile, err := model.NewCustomerProfile(customer, offer)
	if err != nil {
		return model.CustomerProfile{}, fmt.Errorf("build profile: %w", err)
	}
	return profile, nil
}

// persist saves the application and then publishes the events the
// transition raised. Once the save succeeds the transition is committed, so a
// publish failure is logged and not returned.
func persist(
	ctx context.Context,
	repo port.ApplicationRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
	app model.LoanApplication,
) error {
	if err := repo.Save(ctx, app); err != nil {
		return fmt.Errorf("save application: %w", err)
	}
	if err := publisher.Publish(ctx, app.DomainEvents()...); err != nil {
		logger.ErrorContext(ctx, "publish events failed after save",
			slog.String("application_id", app.ID()),
			slog.Int("events", len(app.DomainEvents())),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func transitionOutcome(err error) string {
	switch {
	case err == nil:
		return port.OutcomeSucceeded
	case errors.Is(err, model.ErrPreconditionViolation), errors.Is(err, model.ErrValidation):
		return port.OutcomeBlocked
	default:
		return port.OutcomeFailed
	}
}
