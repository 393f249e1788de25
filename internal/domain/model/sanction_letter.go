package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// SanctionLetter holds the final terms of an approved loan. It is built once
// per application and never modified.
type SanctionLetter struct {
	Reference            string              `json:"reference"`
	ApplicationID        string              `json:"application_id"`
	CustomerID           string              `json:"customer_id"`
	BorrowerName         string              `json:"borrower_name"`
	Purpose              string              `json:"purpose"`
	SanctionedAmount     decimal.Decimal     `json:"sanctioned_amount"`
	InterestRate         decimal.Decimal     `json:"interest_rate"`
	TenureMonths         int                 `json:"tenure_months"`
	EMI                  decimal.Decimal     `json:"emi"`
	TotalInterest        decimal.Decimal     `json:"total_interest"`
	TotalRepayment       decimal.Decimal     `json:"total_repayment"`
	ProcessingFeePercent decimal.Decimal     `json:"processing_fee_percent"`
	ProcessingFee        decimal.Decimal     `json:"processing_fee"`
	GST                  decimal.Decimal     `json:"gst"`
	NetDisbursement      decimal.Decimal     `json:"net_disbursement"`
	GeneratedAt          time.Time           `json:"generated_at"`
	ValidUntil           time.Time           `json:"valid_until"`
	FirstEMIDate         time.Time           `json:"first_emi_date"`
	Schedule             []AmortizationEntry `json:"schedule"`
}

// CheckInvariants verifies the letter's arithmetic. Charges and net
// disbursement must add up to the sanctioned amount exactly, and total
// repayment must equal EMI times tenure.
func (l SanctionLetter) CheckInvariants() error {
	sum := l.ProcessingFee.Add(l.GST).Add(l.NetDisbursement)
	if !sum.Equal(l.SanctionedAmount) {
		return &InvariantViolation{
			Invariant: "fee_gst_net_equals_amount",
			Detail:    "processing fee " + l.ProcessingFee.String() + " + gst " + l.GST.String() + " + net " + l.NetDisbursement.String() + " != " + l.SanctionedAmount.String(),
		}
	}
	expected := l.EMI.Mul(decimal.NewFromInt(int64(l.TenureMonths)))
	if !l.TotalRepayment.Equal(expected) {
		return &InvariantViolation{
			Invariant: "total_repayment_equals_emi_times_tenure",
			Detail:    "total repayment " + l.TotalRepayment.String() + " != " + expected.String(),
		}
	}
	if !l.TotalInterest.Equal(l.TotalRepayment.Sub(l.SanctionedAmount)) {
		return &InvariantViolation{
			Invariant: "total_interest_equals_repayment_minus_amount",
			Detail:    "total interest " + l.TotalInterest.String(),
		}
	}
	return nil
}

// IsExpired reports whether the acceptance window has closed at now.
func (l SanctionLetter) IsExpired(now time.Time) bool {
	return now.After(l.ValidUntil)
}

func (l SanctionLetter) clone() SanctionLetter {
	c := l
	c.Schedule = slices.Clone(l.Schedule)
	return c
}
