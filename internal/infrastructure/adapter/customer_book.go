package adapter

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

// StubCustomerBook serves the reference customers from memory. It
// implements port.CustomerDirectory, port.OfferCatalog and
// port.IdentityVerifier for development and tests.
type StubCustomerBook struct {
	entries map[string]bookEntry
}

type bookEntry struct {
	customer model.Customer
	offer    model.Offer
	identity model.IdentityChecks
}

// NewStubCustomerBook returns a book seeded with CUST001 to CUST012.
func NewStubCustomerBook() *StubCustomerBook {
	entries := make(map[string]bookEntry, len(seedCustomers))
	for _, s := range seedCustomers {
		entries[s.id] = s.entry()
	}
	return &StubCustomerBook{entries: entries}
}

// GetCustomer returns the directory record.
func (b *StubCustomerBook) GetCustomer(_ context.Context, customerID string) (model.Customer, error) {
	e, err := b.lookup(customerID)
	if err != nil {
		return model.Customer{}, err
	}
	return e.customer, nil
}

// GetOffer returns the customer's pre-approved offer.
func (b *StubCustomerBook) GetOffer(_ context.Context, customerID string) (model.Offer, error) {
	e, err := b.lookup(customerID)
	if err != nil {
		return model.Offer{}, err
	}
	return e.offer, nil
}

// Check returns the customer's recorded identity checks.
func (b *StubCustomerBook) Check(_ context.Context, customerID string) (model.IdentityChecks, error) {
	e, err := b.lookup(customerID)
	if err != nil {
		return model.IdentityChecks{}, err
	}
	return e.identity, nil
}

// CustomerIDs lists the seeded customers in book order.
func (b *StubCustomerBook) CustomerIDs() []string {
	ids := make([]string, 0, len(seedCustomers))
	for _, s := range seedCustomers {
		ids = append(ids, s.id)
	}
	return ids
}

func (b *StubCustomerBook) lookup(customerID string) (bookEntry, error) {
	e, ok := b.entries[customerID]
	if !ok {
		return bookEntry{}, fmt.Errorf("customer %q: %w", customerID, model.ErrCustomerNotFound)
	}
	return e, nil
}

// ---------------------------------------------------------------------------
// Seed data
// ---------------------------------------------------------------------------

type seed struct {
	id, name, phone, email, city string
	salary, limit                int64
	score                        int
	rate                         string
	maxTenure                    int
	fee                          string
	minAmount                    int64

	phoneVerified, addressVerified bool
}

func (s seed) entry() bookEntry {
	return bookEntry{
		customer: model.Customer{
			ID:            s.id,
			Name:          s.name,
			Phone:         s.phone,
			Email:         s.email,
			City:          s.city,
			MonthlySalary: decimal.NewFromInt(s.salary),
			CreditScore:   s.score,
		},
		offer: model.Offer{
			CustomerID:           s.id,
			PreApprovedLimit:     decimal.NewFromInt(s.limit),
			InterestRate:         decimal.RequireFromString(s.rate),
			MaxTenureMonths:      s.maxTenure,
			ProcessingFeePercent: decimal.RequireFromString(s.fee),
			MinLoanAmount:        decimal.NewFromInt(s.minAmount),
		},
		identity: model.IdentityChecks{
			PhoneVerified:       s.phoneVerified,
			AddressVerified:     s.addressVerified,
			PrimaryIDVerified:   true,
			SecondaryIDVerified: true,
		},
	}
}

var seedCustomers = []seed{
	{"CUST001", "Rajesh Kumar", "9876543210", "rajesh.kumar@email.com", "Mumbai", 85000, 500000, 780, "11.5", 60, "1.5", 50000, true, true},
	{"CUST002", "Priya Sharma", "9876543211", "priya.sharma@email.com", "Delhi", 95000, 750000, 820, "10.75", 60, "1.0", 50000, true, true},
	{"CUST003", "Amit Patel", "9876543212", "amit.patel@email.com", "Ahmedabad", 150000, 1000000, 750, "11.0", 72, "1.5", 100000, true, true},
	{"CUST004", "Sunita Verma", "9876543213", "sunita.verma@email.com", "Bangalore", 120000, 800000, 810, "10.5", 60, "1.0", 50000, true, true},
	{"CUST005", "Vikram Singh", "9876543214", "vikram.singh@email.com", "Jaipur", 75000, 400000, 720, "12.5", 48, "2.0", 50000, true, true},
	{"CUST006", "Neha Gupta", "9876543215", "neha.gupta@email.com", "Hyderabad", 110000, 700000, 800, "10.75", 60, "1.0", 50000, true, true},
	{"CUST007", "Ravi Menon", "9876543216", "ravi.menon@email.com", "Chennai", 200000, 1500000, 790, "10.25", 72, "1.0", 100000, true, true},
	{"CUST008", "Anita Desai", "9876543217", "anita.desai@email.com", "Pune", 90000, 600000, 770, "11.25", 60, "1.5", 50000, true, true},
	{"CUST009", "Suresh Reddy", "9876543218", "suresh.reddy@email.com", "Kolkata", 130000, 900000, 760, "11.0", 60, "1.0", 50000, true, true},
	{"CUST010", "Deepa Nair", "9876543219", "deepa.nair@email.com", "Kochi", 70000, 300000, 680, "14.0", 36, "2.5", 25000, false, false},
	{"CUST011", "Manoj Tiwari", "9876543220", "manoj.tiwari@email.com", "Lucknow", 180000, 1200000, 740, "11.5", 72, "1.5", 100000, true, true},
	{"CUST012", "Kavita Joshi", "9876543221", "kavita.joshi@email.com", "Indore", 100000, 850000, 830, "10.5", 60, "0.5", 50000, true, true},
}
