package usecase_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/event"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/port/mocks"
	"github.com/bibbank/loan-origination/pkg/testutil"
)

// --- Mock implementations ---

type mockApplicationRepository struct {
	apps         map[string]model.LoanApplication
	saved        []model.LoanApplication
	saveErr      error
	findByIDFunc func(ctx context.Context, id string) (model.LoanApplication, error)
}

func newMockRepository(apps ...model.LoanApplication) *mockApplicationRepository {
	m := &mockApplicationRepository{apps: make(map[string]model.LoanApplication)}
	for _, a := range apps {
		m.apps[a.ID()] = a.ClearEvents()
	}
	return m
}

func (m *mockApplicationRepository) Save(_ context.Context, app model.LoanApplication) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, app)
	// Stored state carries no pending events, as it would after a reload.
	m.apps[app.ID()] = app.ClearEvents()
	return nil
}

func (m *mockApplicationRepository) FindByID(ctx context.Context, id string) (model.LoanApplication, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	app, ok := m.apps[id]
	if !ok {
		return model.LoanApplication{}, fmt.Errorf("application %s: %w", id, model.ErrApplicationNotFound)
	}
	return app, nil
}

func (m *mockApplicationRepository) FindByCustomerID(_ context.Context, customerID string) ([]model.LoanApplication, error) {
	var out []model.LoanApplication
	for _, app := range m.apps {
		if app.CustomerID() == customerID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (m *mockApplicationRepository) lastSaved() model.LoanApplication {
	return m.saved[len(m.saved)-1]
}

type mockEventPublisher struct {
	publishedEvents []event.DomainEvent
	publishErr      error
}

func (m *mockEventPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.publishedEvents = append(m.publishedEvents, events...)
	return nil
}

func (m *mockEventPublisher) eventTypes() []string {
	types := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		types = append(types, e.EventType())
	}
	return types
}

type mockMetricsRecorder struct {
	eligibility []string
	extractions []string
	transitions []string
}

func (m *mockMetricsRecorder) RecordEligibility(_ context.Context, approvalType, reason string) {
	m.eligibility = append(m.eligibility, approvalType+"/"+reason)
}

func (m *mockMetricsRecorder) RecordIncomeExtraction(_ context.Context, tier string, fallback bool) {
	m.extractions = append(m.extractions, fmt.Sprintf("%s/%t", tier, fallback))
}

func (m *mockMetricsRecorder) RecordTransition(_ context.Context, action, outcome string) {
	m.transitions = append(m.transitions, action+"/"+outcome)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- Fixtures ---

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testCustomer() model.Customer {
	return model.Customer{
		ID:            testutil.TestCustomerID,
		Name:          "Rajesh Kumar",
		Phone:         "9876543210",
		Email:         "rajesh.kumar@example.com",
		City:          "Mumbai",
		MonthlySalary: d("85000"),
		CreditScore:   780,
	}
}

func testOffer() model.Offer {
	return model.Offer{
		CustomerID:           testutil.TestCustomerID,
		PreApprovedLimit:     d("500000"),
		InterestRate:         d("11.5"),
		MaxTenureMonths:      60,
		ProcessingFeePercent: d("1.5"),
		MinLoanAmount:        d("50000"),
	}
}

func testProfile(t *testing.T) model.CustomerProfile {
	t.Helper()
	p, err := model.NewCustomerProfile(testCustomer(), testOffer())
	if err != nil {
		t.Fatalf("NewCustomerProfile() error = %v", err)
	}
	return p
}

func allChecks() model.IdentityChecks {
	return model.IdentityChecks{PhoneVerified: true, AddressVerified: true, PrimaryIDVerified: true, SecondaryIDVerified: true}
}

// directoryFor returns gomock collaborators that know CUST001 only.
func directoryFor(ctrl *gomock.Controller) (*mocks.MockCustomerDirectory, *mocks.MockOfferCatalog) {
	directory := mocks.NewMockCustomerDirectory(ctrl)
	catalog := mocks.NewMockOfferCatalog(ctrl)

	directory.EXPECT().GetCustomer(gomock.Any(), testutil.TestCustomerID).Return(testCustomer(), nil).AnyTimes()
	catalog.EXPECT().GetOffer(gomock.Any(), testutil.TestCustomerID).Return(testOffer(), nil).AnyTimes()
	directory.EXPECT().GetCustomer(gomock.Any(), gomock.Not(testutil.TestCustomerID)).
		Return(model.Customer{}, model.ErrCustomerNotFound).AnyTimes()
	return directory, catalog
}

// newApplication stores a NOT_STARTED application for CUST001.
func newApplication(t *testing.T) model.LoanApplication {
	t.Helper()
	app, err := model.NewLoanApplication(testProfile(t), testutil.FixedNow)
	if err != nil {
		t.Fatalf("NewLoanApplication() error = %v", err)
	}
	return app
}
