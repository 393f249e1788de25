package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

// paisa is the step used to walk a computed maximum down until it fits.
var paisa = decimal.RequireFromString("0.01")

// maxAffordableSteps bounds the walk; float rounding in the growth factor
// only ever costs a few paise.
const maxAffordableSteps = 1000

// ---------------------------------------------------------------------------
// AffordabilityVerifier – EMI against verified income
// ---------------------------------------------------------------------------

// AffordabilityVerifier re-checks a pending request's EMI against a verified
// salary. It is the only thing that can clear a conditional approval.
type AffordabilityVerifier struct{}

// NewAffordabilityVerifier returns a new verifier instance.
func NewAffordabilityVerifier() *AffordabilityVerifier {
	return &AffordabilityVerifier{}
}

// Verify computes the EMI of req at the profile's rate and its ratio to
// verifiedSalary. The check passes when the ratio is at most
// MaxEMIToIncomeRatio; otherwise MaxEligibleAmount carries the largest
// principal whose own ratio is within the ceiling.
func (v *AffordabilityVerifier) Verify(
	verifiedSalary decimal.Decimal,
	req model.LoanRequest,
	profile model.CustomerProfile,
	now time.Time,
) (model.AffordabilityResult, error) {
	if !verifiedSalary.IsPositive() {
		return model.AffordabilityResult{}, model.NewValidationError("verified_salary", "must be positive, got %s", verifiedSalary)
	}

	emi, err := model.CalculateEMI(req.Amount, profile.InterestRate, req.TenureMonths)
	if err != nil {
		return model.AffordabilityResult{}, err
	}

	ratio := emi.EMI.Div(verifiedSalary)
	result := model.AffordabilityResult{
		VerifiedSalary:  verifiedSalary,
		RequestedAmount: req.Amount,
		TenureMonths:    req.TenureMonths,
		InterestRate:    profile.InterestRate,
		EMI:             emi.EMI,
		Ratio:           ratio,
		Passed:          ratio.LessThanOrEqual(model.MaxEMIToIncomeRatio),
		CheckedAt:       now,
	}
	if result.Passed {
		return result, nil
	}

	maxAmount, err := MaxAffordableAmount(verifiedSalary, profile.InterestRate, req.TenureMonths)
	if err != nil {
		return model.AffordabilityResult{}, err
	}
	result.MaxEligibleAmount = decimal.NewNullDecimal(maxAmount)
	return result, nil
}

// MaxAffordableAmount returns the largest principal, in whole paise, whose
// EMI at the given rate and tenure stays within MaxEMIToIncomeRatio of
// salary. The inverse formula's result is truncated and then stepped down
// until the forward EMI agrees, so the figure always round-trips.
func MaxAffordableAmount(salary, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if !salary.IsPositive() {
		return decimal.Zero, nil
	}
	maxEMI := salary.Mul(model.MaxEMIToIncomeRatio)
	p, err := model.MaxPrincipalForEMI(maxEMI, annualRatePercent, tenureMonths)
	if err != nil {
		return decimal.Zero, err
	}

	p = p.Truncate(2)
	for step := 0; step < maxAffordableSteps; step++ {
		if !p.IsPositive() {
			return decimal.Zero, nil
		}
		emi, err := model.CalculateEMI(p, annualRatePercent, tenureMonths)
		if err != nil {
			return decimal.Zero, err
		}
		if emi.EMI.Div(salary).LessThanOrEqual(model.MaxEMIToIncomeRatio) {
			return p, nil
		}
		p = p.Sub(paisa)
	}
	return decimal.Zero, &model.InvariantViolation{
		Invariant: "max_eligible_amount_round_trip",
		Detail:    "no principal near " + p.String() + " fits the income ceiling",
	}
}
