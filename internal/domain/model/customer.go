package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// Customer is the directory's record of a customer.
type Customer struct {
	ID            string          `json:"customer_id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email"`
	City          string          `json:"city"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
	CreditScore   int             `json:"credit_score"`
}

// Offer is the catalog's pre-approved personal-loan offer for a customer.
type Offer struct {
	CustomerID           string          `json:"customer_id"`
	PreApprovedLimit     decimal.Decimal `json:"pre_approved_limit"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	MaxTenureMonths      int             `json:"max_tenure_months"`
	ProcessingFeePercent decimal.Decimal `json:"processing_fee_percent"`
	MinLoanAmount        decimal.Decimal `json:"min_loan_amount"`
}

// CustomerProfile is the read-only snapshot the decision engine works from.
// It is captured once per session and never mutated.
type CustomerProfile struct {
	CustomerID           string          `json:"customer_id"`
	Name                 string          `json:"name"`
	MonthlySalary        decimal.Decimal `json:"monthly_salary"`
	PreApprovedLimit     decimal.Decimal `json:"pre_approved_limit"`
	CreditScore          int             `json:"credit_score"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	MaxTenureMonths      int             `json:"max_tenure_months"`
	ProcessingFeePercent decimal.Decimal `json:"processing_fee_percent"`
	MinLoanAmount        decimal.Decimal `json:"min_loan_amount"`
}

// NewCustomerProfile joins a directory record with its offer.
func NewCustomerProfile(c Customer, o Offer) (CustomerProfile, error) {
	if c.ID == "" {
		return CustomerProfile{}, NewValidationError("customer_id", "is required")
	}
	if o.CustomerID != "" && o.CustomerID != c.ID {
		return CustomerProfile{}, NewValidationError("offer", "belongs to %s, not %s", o.CustomerID, c.ID)
	}
	p := CustomerProfile{
		CustomerID:           c.ID,
		Name:                 c.Name,
		MonthlySalary:        c.MonthlySalary,
		PreApprovedLimit:     o.PreApprovedLimit,
		CreditScore:          c.CreditScore,
		InterestRate:         o.InterestRate,
		MaxTenureMonths:      o.MaxTenureMonths,
		ProcessingFeePercent: o.ProcessingFeePercent,
		MinLoanAmount:        o.MinLoanAmount,
	}
	return p, p.Validate()
}

// Validate rejects profiles that cannot be priced.
func (p CustomerProfile) Validate() error {
	switch {
	case p.CustomerID == "":
		return NewValidationError("customer_id", "is required")
	case p.MonthlySalary.IsNegative():
		return NewValidationError("monthly_salary", "must not be negative")
	case p.PreApprovedLimit.IsNegative():
		return NewValidationError("pre_approved_limit", "must not be negative")
	case p.InterestRate.IsNegative():
		return NewValidationError("interest_rate", "must not be negative")
	case p.MaxTenureMonths <= 0:
		return NewValidationError("max_tenure_months", "must be positive")
	case p.ProcessingFeePercent.IsNegative() || p.ProcessingFeePercent.GreaterThan(decimal.NewFromInt(100)):
		return NewValidationError("processing_fee_percent", "must be within [0, 100]")
	case p.MinLoanAmount.IsNegative():
		return NewValidationError("min_loan_amount", "must not be negative")
	}
	return nil
}

// ExtendedLimit is the ceiling for conditional approval.
func (p CustomerProfile) ExtendedLimit() decimal.Decimal {
	return p.PreApprovedLimit.Mul(ExtendedLimitMultiplier)
}

// RiskCategory bands the profile's credit score.
func (p CustomerProfile) RiskCategory() valueobject.RiskCategory {
	return valueobject.RiskCategoryForScore(p.CreditScore)
}

// AvailableTenures lists the tenures this profile may choose from.
func (p CustomerProfile) AvailableTenures() []int {
	return AvailableTenures(p.MaxTenureMonths)
}
