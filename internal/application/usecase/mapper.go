package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/pkg/money"
)

// Currency figures leave the use cases rounded to paise; ratios to four
// places.
const ratioPlaces = 4

func roundNull(n decimal.NullDecimal) decimal.NullDecimal {
	if !n.Valid {
		return n
	}
	return decimal.NewNullDecimal(n.Decimal.Round(money.PresentationPlaces))
}

func toRejectionResponse(r *model.PolicyRejection) *dto.RejectionResponse {
	if r == nil {
		return nil
	}
	return &dto.RejectionResponse{
		Reason:          r.Reason,
		Actual:          r.Actual,
		Threshold:       r.Threshold,
		SuggestedAmount: roundNull(r.SuggestedAmount),
	}
}

func toEligibilityResponse(d model.EligibilityDecision, profile model.CustomerProfile) dto.EligibilityResponse {
	resp := dto.EligibilityResponse{
		CustomerID:         profile.CustomerID,
		ApprovalType:       d.ApprovalType.String(),
		Reason:             d.Reason,
		RequestedAmount:    d.RequestedAmount.Round(money.PresentationPlaces),
		TenureMonths:       d.TenureMonths,
		RequiredDocuments:  d.RequiredDocuments,
		RiskCategory:       d.RiskCategory.String(),
		SuggestedMaxAmount: roundNull(d.SuggestedMaxAmount),
		AffordableAmount:   roundNull(d.AffordableAmount),
		DisplayEMI:         roundNull(d.DisplayEMI),
		DisplayRatio:       d.DisplayRatio,
		AvailableTenures:   profile.AvailableTenures(),
		MinLoanAmount:      profile.MinLoanAmount.Round(money.PresentationPlaces),
		Rejection:          toRejectionResponse(d.Rejection),
	}
	if resp.RequiredDocuments == nil {
		resp.RequiredDocuments = []string{}
	}
	return resp
}

func toIncomeResponse(in model.ExtractedIncome) dto.IncomeResponse {
	resp := dto.IncomeResponse{
		Amount:         in.Amount.Round(money.PresentationPlaces),
		ConfidenceTier: in.ConfidenceTier.String(),
		SourceLabel:    in.SourceLabel,
		Fallback:       in.Fallback,
		Candidates:     make([]dto.IncomeCandidateResponse, 0, len(in.Candidates)),
	}
	for _, c := range in.Candidates {
		resp.Candidates = append(resp.Candidates, dto.IncomeCandidateResponse{
			Amount:         c.Amount.Round(money.PresentationPlaces),
			ConfidenceTier: c.Tier.String(),
			SourceLabel:    c.SourceLabel,
		})
	}
	return resp
}

func toAffordabilityResponse(app model.LoanApplication, r model.AffordabilityResult) dto.AffordabilityResponse {
	resp := dto.AffordabilityResponse{
		ApplicationID:     app.ID(),
		Status:            app.Status().String(),
		VerifiedSalary:    r.VerifiedSalary.Round(money.PresentationPlaces),
		RequestedAmount:   r.RequestedAmount.Round(money.PresentationPlaces),
		TenureMonths:      r.TenureMonths,
		EMI:               r.EMI.Round(money.PresentationPlaces),
		Ratio:             r.Ratio.Round(ratioPlaces),
		Passed:            r.Passed,
		MaxEligibleAmount: roundNull(r.MaxEligibleAmount),
		Rejection:         toRejectionResponse(r.Rejection()),
	}
	if r.Income != nil {
		income := toIncomeResponse(*r.Income)
		resp.Income = &income
	}
	return resp
}

func toSanctionResponse(l model.SanctionLetter) dto.SanctionLetterResponse {
	resp := dto.SanctionLetterResponse{
		Reference:                l.Reference,
		ApplicationID:            l.ApplicationID,
		CustomerID:               l.CustomerID,
		BorrowerName:             l.BorrowerName,
		Purpose:                  l.Purpose,
		SanctionedAmount:         l.SanctionedAmount.Round(money.PresentationPlaces),
		InterestRate:             l.InterestRate,
		TenureMonths:             l.TenureMonths,
		EMI:                      l.EMI,
		TotalInterest:            l.TotalInterest,
		TotalRepayment:           l.TotalRepayment,
		ProcessingFeePercent:     l.ProcessingFeePercent,
		ProcessingFee:            l.ProcessingFee,
		GST:                      l.GST,
		NetDisbursement:          l.NetDisbursement,
		FormattedNetDisbursement: money.Rupees(l.NetDisbursement).Format(),
		AmountInWords:            money.Rupees(l.SanctionedAmount).Words(),
		GeneratedAt:              l.GeneratedAt,
		ValidUntil:               l.ValidUntil,
		FirstEMIDate:             l.FirstEMIDate,
		Schedule:                 make([]dto.AmortizationEntryResponse, 0, len(l.Schedule)),
	}
	for _, e := range l.Schedule {
		resp.Schedule = append(resp.Schedule, dto.AmortizationEntryResponse{
			Period:           e.Period,
			DueDate:          e.DueDate,
			Principal:        e.Principal,
			Interest:         e.Interest,
			Total:            e.Total,
			RemainingBalance: e.RemainingBalance,
		})
	}
	return resp
}

func toApplicationResponse(app model.LoanApplication) dto.ApplicationResponse {
	req := app.Request()
	resp := dto.ApplicationResponse{
		ID:                app.ID(),
		CustomerID:        app.CustomerID(),
		Amount:            req.Amount.Round(money.PresentationPlaces),
		TenureMonths:      req.TenureMonths,
		Purpose:           req.Purpose,
		Status:            app.Status().String(),
		ApprovalReference: app.ApprovalReference(),
		RejectionReason:   app.RejectionReason(),
		AuditLog:          make([]dto.AuditEntryResponse, 0),
		CreatedAt:         app.CreatedAt(),
		UpdatedAt:         app.UpdatedAt(),
	}
	if d, ok := app.Decision(); ok {
		resp.ApprovalType = d.ApprovalType.String()
		resp.RequiredDocuments = d.RequiredDocuments
	}
	if r, ok := app.Affordability(); ok {
		a := toAffordabilityResponse(app, r)
		resp.Affordability = &a
	}
	if l, ok := app.Sanction(); ok {
		s := toSanctionResponse(l)
		resp.Sanction = &s
	}
	for _, e := range app.AuditLog() {
		resp.AuditLog = append(resp.AuditLog, dto.AuditEntryResponse{
			Sequence: e.Sequence,
			Action:   e.Action.String(),
			Status:   e.Status.String(),
			At:       e.At,
			Figures:  e.Figures,
		})
	}
	return resp
}
