package model

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// LoanRequest is what the customer asks for.
type LoanRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	TenureMonths int             `json:"tenure_months"`
	Purpose      string          `json:"purpose"`
}

// NewLoanRequest builds a structurally valid request: a positive amount and a
// tenure from the product's offered set.
func NewLoanRequest(amount decimal.Decimal, tenureMonths int, purpose string) (LoanRequest, error) {
	req := LoanRequest{Amount: amount, TenureMonths: tenureMonths, Purpose: strings.TrimSpace(purpose)}
	return req, req.Validate()
}

// Validate checks the request on its own, without a customer profile.
func (r LoanRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return NewValidationError("amount", "must be positive, got %s", r.Amount)
	}
	if !slices.Contains(offeredTenures, r.TenureMonths) {
		return NewValidationError("tenure_months", "%d is not one of %v", r.TenureMonths, offeredTenures)
	}
	return nil
}

// ValidateFor checks the tenure against the profile's offer. The offer's
// minimum amount is shown to the customer but never enforced.
func (r LoanRequest) ValidateFor(p CustomerProfile) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if allowed := p.AvailableTenures(); !slices.Contains(allowed, r.TenureMonths) {
		return NewValidationError("tenure_months", "%d exceeds the offer maximum of %d (allowed %v)",
			r.TenureMonths, p.MaxTenureMonths, allowed)
	}
	return nil
}

// IsZero reports whether no request has been recorded.
func (r LoanRequest) IsZero() bool {
	return r.Amount.IsZero() && r.TenureMonths == 0
}
