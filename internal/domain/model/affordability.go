package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AffordabilityResult is the EMI-to-verified-income check for a pending
// request. MaxEligibleAmount is set only when the check fails.
type AffordabilityResult struct {
	VerifiedSalary    decimal.Decimal     `json:"verified_salary"`
	RequestedAmount   decimal.Decimal     `json:"requested_amount"`
	TenureMonths      int                 `json:"tenure_months"`
	InterestRate      decimal.Decimal     `json:"interest_rate"`
	EMI               decimal.Decimal     `json:"emi"`
	Ratio             decimal.Decimal     `json:"ratio"`
	Passed            bool                `json:"passed"`
	MaxEligibleAmount decimal.NullDecimal `json:"max_eligible_amount"`
	Income            *ExtractedIncome    `json:"income,omitempty"`
	CheckedAt         time.Time           `json:"checked_at"`
}

// Matches reports whether the result was computed for req.
func (r AffordabilityResult) Matches(req LoanRequest) bool {
	return r.RequestedAmount.Equal(req.Amount) && r.TenureMonths == req.TenureMonths
}

// Rejection describes a failed check, or nil when it passed.
func (r AffordabilityResult) Rejection() *PolicyRejection {
	if r.Passed {
		return nil
	}
	return &PolicyRejection{
		Reason:          ReasonAffordabilityExceeded,
		Actual:          r.Ratio,
		Threshold:       MaxEMIToIncomeRatio,
		SuggestedAmount: r.MaxEligibleAmount,
	}
}
