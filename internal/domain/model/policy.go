package model

import "github.com/shopspring/decimal"

// Underwriting thresholds. They are fixed for the product and not read from
// configuration.
var (
	MinimumMonthlySalary    = decimal.NewFromInt(25_000)
	ExtendedLimitMultiplier = decimal.NewFromInt(2)
	MaxEMIToIncomeRatio     = decimal.RequireFromString("0.50")
	GSTRate                 = decimal.RequireFromString("0.18")

	// IncomeBandMin and IncomeBandMax bound a plausible monthly salary.
	IncomeBandMin = decimal.NewFromInt(10_000)
	IncomeBandMax = decimal.NewFromInt(10_000_000)
)

const (
	MinimumCreditScore   = 700
	MaximumTenureMonths  = 72
	SanctionValidityDays = 30
	MaxIncomeCandidates  = 5

	// DocumentIncomeProof is the only document a conditional approval asks for.
	DocumentIncomeProof = "income_proof"
)

// Eligibility reason codes.
const (
	ReasonIncomeBelowMinimum        = "income_below_minimum"
	ReasonTenureExceedsMaximum      = "tenure_exceeds_maximum"
	ReasonCreditScoreBelowThreshold = "credit_score_below_threshold"
	ReasonWithinPreApprovedLimit    = "within_pre_approved_limit"
	ReasonWithinExtendedLimit       = "within_extended_limit"
	ReasonExceedsExtendedLimit      = "exceeds_extended_limit"
	ReasonAffordabilityExceeded     = "emi_exceeds_income_ceiling"
)

// offeredTenures lists every tenure the product sells, in months.
var offeredTenures = []int{12, 24, 36, 48, 60, MaximumTenureMonths}

// AvailableTenures returns the offered tenures not exceeding maxTenureMonths,
// ascending. 72 months only appears for offers that run past 60.
func AvailableTenures(maxTenureMonths int) []int {
	options := make([]int, 0, len(offeredTenures))
	for _, t := range offeredTenures {
		if t <= maxTenureMonths {
			options = append(options, t)
		}
	}
	return options
}
