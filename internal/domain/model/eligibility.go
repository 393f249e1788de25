package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// EligibilityDecision is the outcome of evaluating a request against a
// profile. It is a pure function of (amount, tenure, profile).
type EligibilityDecision struct {
	ApprovalType      valueobject.ApprovalType `json:"approval_type"`
	Reason            string                   `json:"reason"`
	RequestedAmount   decimal.Decimal          `json:"requested_amount"`
	TenureMonths      int                      `json:"tenure_months"`
	RequiredDocuments []string                 `json:"required_documents"`
	RiskCategory      valueobject.RiskCategory `json:"risk_category"`

	// SuggestedMaxAmount is set when the request exceeds the extended limit.
	SuggestedMaxAmount decimal.NullDecimal `json:"suggested_max_amount"`

	// AffordableAmount is the principal whose EMI stays within the income
	// ceiling at the registered salary; set alongside SuggestedMaxAmount.
	AffordableAmount decimal.NullDecimal `json:"affordable_amount"`

	// DisplayEMI and DisplayRatio are informational, INSTANT only.
	DisplayEMI   decimal.NullDecimal `json:"display_emi"`
	DisplayRatio decimal.NullDecimal `json:"display_ratio"`

	Rejection *PolicyRejection `json:"rejection,omitempty"`
}

func (d EligibilityDecision) IsInstant() bool {
	return d.ApprovalType.Equal(valueobject.ApprovalTypeInstant)
}

func (d EligibilityDecision) IsConditional() bool {
	return d.ApprovalType.Equal(valueobject.ApprovalTypeConditional)
}

func (d EligibilityDecision) IsRejected() bool {
	return d.ApprovalType.Equal(valueobject.ApprovalTypeRejected)
}

// Err returns the rejection as an error, or nil when the request is approvable.
func (d EligibilityDecision) Err() error {
	if d.Rejection == nil {
		return nil
	}
	return d.Rejection
}

// Matches reports whether the decision was made for req.
func (d EligibilityDecision) Matches(req LoanRequest) bool {
	return d.RequestedAmount.Equal(req.Amount) && d.TenureMonths == req.TenureMonths
}
