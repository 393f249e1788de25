package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYearPercent = decimal.NewFromInt(1200)
	one                  = decimal.NewFromInt(1)
)

// EMIBreakdown is the result of an EMI computation at full precision.
// Round only when presenting it.
type EMIBreakdown struct {
	EMI           decimal.Decimal `json:"emi"`
	TotalPayment  decimal.Decimal `json:"total_payment"`
	TotalInterest decimal.Decimal `json:"total_interest"`
}

// Rounded returns the breakdown with every figure rounded to paise.
func (b EMIBreakdown) Rounded() EMIBreakdown {
	return EMIBreakdown{
		EMI:           b.EMI.Round(2),
		TotalPayment:  b.TotalPayment.Round(2),
		TotalInterest: b.TotalInterest.Round(2),
	}
}

// CalculateEMI computes the equated monthly instalment of a reducing-balance
// loan:
//
//	r   = annualRatePercent / 1200
//	emi = P * r * (1+r)^n / ((1+r)^n - 1)   (P/n when r == 0)
//
// TotalPayment is emi*n and TotalInterest is TotalPayment-P.
func CalculateEMI(principal, annualRatePercent decimal.Decimal, termMonths int) (EMIBreakdown, error) {
	if !principal.IsPositive() {
		return EMIBreakdown{}, NewValidationError("principal", "must be positive, got %s", principal)
	}
	if err := validateRateAndTerm(annualRatePercent, termMonths); err != nil {
		return EMIBreakdown{}, err
	}

	n := decimal.NewFromInt(int64(termMonths))
	var emi decimal.Decimal

	r := annualRatePercent.Div(monthsPerYearPercent)
	if r.IsZero() {
		emi = principal.Div(n)
	} else {
		factor := growthFactor(r, termMonths)
		emi = principal.Mul(r).Mul(factor).Div(factor.Sub(one))
	}

	total := emi.Mul(n)
	return EMIBreakdown{
		EMI:           emi,
		TotalPayment:  total,
		TotalInterest: total.Sub(principal),
	}, nil
}

// MaxPrincipalForEMI inverts the EMI formula: the largest principal whose
// instalment at the given rate and term equals maxEMI.
//
//	P = maxEMI * ((1+r)^n - 1) / (r * (1+r)^n)   (maxEMI*n when r == 0)
func MaxPrincipalForEMI(maxEMI, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if maxEMI.IsNegative() {
		return decimal.Zero, NewValidationError("max_emi", "must not be negative, got %s", maxEMI)
	}
	if err := validateRateAndTerm(annualRatePercent, termMonths); err != nil {
		return decimal.Zero, err
	}

	r := annualRatePercent.Div(monthsPerYearPercent)
	if r.IsZero() {
		return maxEMI.Mul(decimal.NewFromInt(int64(termMonths))), nil
	}
	factor := growthFactor(r, termMonths)
	return maxEMI.Mul(factor.Sub(one)).Div(r.Mul(factor)), nil
}

func validateRateAndTerm(annualRatePercent decimal.Decimal, termMonths int) error {
	if annualRatePercent.IsNegative() {
		return NewValidationError("interest_rate", "must not be negative, got %s", annualRatePercent)
	}
	if termMonths <= 0 {
		return NewValidationError("tenure_months", "must be positive, got %d", termMonths)
	}
	return nil
}

// growthFactor returns (1+r)^n. The power is taken in float64 and the result
// brought back to decimal for the monetary arithmetic around it.
func growthFactor(r decimal.Decimal, n int) decimal.Decimal {
	return decimal.NewFromFloat(math.Pow(1+r.InexactFloat64(), float64(n)))
}

// AmortizationEntry is one period of a repayment schedule.
type AmortizationEntry struct {
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	Period           int             `json:"period"`
}

// GenerateAmortizationSchedule lays out a fixed-instalment schedule with the
// first payment due one month after startDate. Figures are in paise; the last
// period absorbs rounding so the balance reaches exactly zero.
func GenerateAmortizationSchedule(
	principal, annualRatePercent decimal.Decimal,
	termMonths int,
	startDate time.Time,
) ([]AmortizationEntry, error) {
	breakdown, err := CalculateEMI(principal, annualRatePercent, termMonths)
	if err != nil {
		return nil, err
	}
	payment := breakdown.EMI.Round(2)
	r := annualRatePercent.Div(monthsPerYearPercent)

	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		interest := remaining.Mul(r).Round(2)
		principalPart := payment.Sub(interest)

		if period == termMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          startDate.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}

	return schedule, nil
}
