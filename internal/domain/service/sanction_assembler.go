package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// ---------------------------------------------------------------------------
// SanctionAssembler – final charges for an approved application
// ---------------------------------------------------------------------------

// SanctionAssembler builds the sanction letter for an approved application.
type SanctionAssembler struct {
	newReference ReferenceGenerator
}

// NewSanctionAssembler returns an assembler. A nil generator uses
// NewReference.
func NewSanctionAssembler(gen ReferenceGenerator) *SanctionAssembler {
	if gen == nil {
		gen = NewReference
	}
	return &SanctionAssembler{newReference: gen}
}

// Assemble recomputes the EMI at the approved terms and derives the charges:
//
//	processing_fee   = amount * fee_percent / 100
//	gst              = processing_fee * 0.18
//	net_disbursement = amount - processing_fee - gst
//
// Fee and GST are rounded to paise before the net is taken, so the three
// always add back to the amount. The letter is valid for
// SanctionValidityDays from now and the first EMI falls due one month later.
func (s *SanctionAssembler) Assemble(app model.LoanApplication, now time.Time) (model.SanctionLetter, error) {
	if !app.Status().Equal(valueobject.ApplicationStatusApproved) {
		return model.SanctionLetter{}, &model.PreconditionViolation{
			Action: valueobject.ActionGenerateSanction.String(),
			Status: app.Status().String(),
			Unmet: []model.UnmetCondition{{
				Check:    model.CheckStatus,
				Actual:   app.Status().String(),
				Required: valueobject.ApplicationStatusApproved.String(),
			}},
		}
	}

	req := app.Request()
	profile := app.Profile()

	breakdown, err := model.CalculateEMI(req.Amount, profile.InterestRate, req.TenureMonths)
	if err != nil {
		return model.SanctionLetter{}, err
	}
	emi := breakdown.EMI.Round(2)
	totalRepayment := emi.Mul(decimal.NewFromInt(int64(req.TenureMonths)))

	fee := req.Amount.Mul(profile.ProcessingFeePercent).Div(hundred).Round(2)
	gst := fee.Mul(model.GSTRate).Round(2)
	net := req.Amount.Sub(fee).Sub(gst)

	schedule, err := model.GenerateAmortizationSchedule(req.Amount, profile.InterestRate, req.TenureMonths, now)
	if err != nil {
		return model.SanctionLetter{}, err
	}

	letter := model.SanctionLetter{
		Reference:            s.newReference(SanctionReferencePrefix, now),
		ApplicationID:        app.ID(),
		CustomerID:           app.CustomerID(),
		BorrowerName:         profile.Name,
		Purpose:              req.Purpose,
		SanctionedAmount:     req.Amount,
		InterestRate:         profile.InterestRate,
		TenureMonths:         req.TenureMonths,
		EMI:                  emi,
		TotalInterest:        totalRepayment.Sub(req.Amount),
		TotalRepayment:       totalRepayment,
		ProcessingFeePercent: profile.ProcessingFeePercent,
		ProcessingFee:        fee,
		GST:                  gst,
		NetDisbursement:      net,
		GeneratedAt:          now,
		ValidUntil:           now.AddDate(0, 0, model.SanctionValidityDays),
		FirstEMIDate:         now.AddDate(0, 1, 0),
		Schedule:             schedule,
	}
	if err := letter.CheckInvariants(); err != nil {
		return model.SanctionLetter{}, err
	}
	return letter, nil
}
