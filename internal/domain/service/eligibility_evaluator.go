package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// EligibilityEvaluator – tiered approval policy
// ---------------------------------------------------------------------------

// EligibilityEvaluator decides whether a request is instantly approvable,
// approvable after income verification, or rejected.
type EligibilityEvaluator struct{}

// NewEligibilityEvaluator returns a new evaluator instance.
func NewEligibilityEvaluator() *EligibilityEvaluator {
	return &EligibilityEvaluator{}
}

// Evaluate applies the rules in fixed order; the first match wins.
//
//	salary < 25,000              -> REJECTED income_below_minimum
//	tenure > 72                  -> REJECTED tenure_exceeds_maximum
//	credit score < 700           -> REJECTED credit_score_below_threshold
//	amount <= limit              -> INSTANT (EMI shown for display only)
//	amount <= 2 x limit          -> CONDITIONAL, income proof required
//	otherwise                    -> REJECTED exceeds_extended_limit
//
// Requests that are malformed for the profile (tenure not offered, amount
// below the offer minimum) fail with a ValidationError once the hard floors
// have passed.
func (e *EligibilityEvaluator) Evaluate(req model.LoanRequest, profile model.CustomerProfile) (model.EligibilityDecision, error) {
	if !req.Amount.IsPositive() {
		return model.EligibilityDecision{}, model.NewValidationError("amount", "must be positive, got %s", req.Amount)
	}
	if req.TenureMonths <= 0 {
		return model.EligibilityDecision{}, model.NewValidationError("tenure_months", "must be positive, got %d", req.TenureMonths)
	}
	if err := profile.Validate(); err != nil {
		return model.EligibilityDecision{}, err
	}

	decision := model.EligibilityDecision{
		RequestedAmount: req.Amount,
		TenureMonths:    req.TenureMonths,
		RiskCategory:    profile.RiskCategory(),
	}

	switch {
	case profile.MonthlySalary.LessThan(model.MinimumMonthlySalary):
		return reject(decision, &model.PolicyRejection{
			Reason:    model.ReasonIncomeBelowMinimum,
			Actual:    profile.MonthlySalary,
			Threshold: model.MinimumMonthlySalary,
		}), nil
	case req.TenureMonths > model.MaximumTenureMonths:
		return reject(decision, &model.PolicyRejection{
			Reason:    model.ReasonTenureExceedsMaximum,
			Actual:    decimal.NewFromInt(int64(req.TenureMonths)),
			Threshold: decimal.NewFromInt(model.MaximumTenureMonths),
		}), nil
	case profile.CreditScore < model.MinimumCreditScore:
		return reject(decision, &model.PolicyRejection{
			Reason:    model.ReasonCreditScoreBelowThreshold,
			Actual:    decimal.NewFromInt(int64(profile.CreditScore)),
			Threshold: decimal.NewFromInt(model.MinimumCreditScore),
		}), nil
	}

	if err := req.ValidateFor(profile); err != nil {
		return model.EligibilityDecision{}, err
	}

	extended := profile.ExtendedLimit()
	switch {
	case req.Amount.LessThanOrEqual(profile.PreApprovedLimit):
		emi, err := model.CalculateEMI(req.Amount, profile.InterestRate, req.TenureMonths)
		if err != nil {
			return model.EligibilityDecision{}, err
		}
		decision.ApprovalType = valueobject.ApprovalTypeInstant
		decision.Reason = model.ReasonWithinPreApprovedLimit
		decision.DisplayEMI = decimal.NewNullDecimal(emi.EMI.Round(2))
		decision.DisplayRatio = decimal.NewNullDecimal(emi.EMI.Div(profile.MonthlySalary).Round(4))
		return decision, nil

	case req.Amount.LessThanOrEqual(extended):
		decision.ApprovalType = valueobject.ApprovalTypeConditional
		decision.Reason = model.ReasonWithinExtendedLimit
		decision.RequiredDocuments = []string{model.DocumentIncomeProof}
		return decision, nil

	default:
		affordable, err := MaxAffordableAmount(profile.MonthlySalary, profile.InterestRate, req.TenureMonths)
		if err != nil {
			return model.EligibilityDecision{}, err
		}
		decision.SuggestedMaxAmount = decimal.NewNullDecimal(extended)
		decision.AffordableAmount = decimal.NewNullDecimal(affordable)
		return reject(decision, &model.PolicyRejection{
			Reason:          model.ReasonExceedsExtendedLimit,
			Actual:          req.Amount,
			Threshold:       extended,
			SuggestedAmount: decimal.NewNullDecimal(extended),
		}), nil
	}
}

func reject(d model.EligibilityDecision, r *model.PolicyRejection) model.EligibilityDecision {
	d.ApprovalType = valueobject.ApprovalTypeRejected
	d.Reason = r.Reason
	d.Rejection = r
	return d
}
