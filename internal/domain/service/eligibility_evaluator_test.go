package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/service"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
	"github.com/bibbank/loan-origination/pkg/testutil"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testProfile() model.CustomerProfile {
	return model.CustomerProfile{
		CustomerID:           testutil.TestCustomerID,
		Name:                 "Rajesh Kumar",
		MonthlySalary:        d("85000"),
		PreApprovedLimit:     d("500000"),
		CreditScore:          780,
		InterestRate:         d("11.5"),
		MaxTenureMonths:      60,
		ProcessingFeePercent: d("1.5"),
		MinLoanAmount:        d("50000"),
	}
}

func evaluate(t *testing.T, amount string, tenure int, profile model.CustomerProfile) model.EligibilityDecision {
	t.Helper()
	decision, err := service.NewEligibilityEvaluator().Evaluate(
		model.LoanRequest{Amount: d(amount), TenureMonths: tenure}, profile)
	require.NoError(t, err)
	return decision
}

func TestEvaluate_Instant(t *testing.T) {
	decision := evaluate(t, "500000", 36, testProfile())

	assert.True(t, decision.IsInstant())
	assert.Equal(t, model.ReasonWithinPreApprovedLimit, decision.Reason)
	assert.Equal(t, valueobject.RiskLow, decision.RiskCategory)
	assert.Empty(t, decision.RequiredDocuments)
	require.True(t, decision.DisplayEMI.Valid)
	testutil.AssertDecimal(t, "16488.00", decision.DisplayEMI.Decimal)
	testutil.AssertDecimal(t, "0.1940", decision.DisplayRatio.Decimal)
	assert.NoError(t, decision.Err())
}

func TestEvaluate_ConditionalScenario(t *testing.T) {
	decision := evaluate(t, "700000", 36, testProfile())

	assert.True(t, decision.IsConditional())
	assert.Equal(t, []string{"income_proof"}, decision.RequiredDocuments)
	assert.False(t, decision.DisplayEMI.Valid, "no affordability claim against registered salary")
	assert.False(t, decision.DisplayRatio.Valid)
	assert.False(t, decision.SuggestedMaxAmount.Valid)
	assert.Nil(t, decision.Rejection)
}

func TestEvaluate_ExceedsExtendedLimit(t *testing.T) {
	decision := evaluate(t, "1200000", 36, testProfile())

	assert.True(t, decision.IsRejected())
	assert.Equal(t, model.ReasonExceedsExtendedLimit, decision.Reason)
	testutil.AssertDecimal(t, "1000000", decision.SuggestedMaxAmount.Decimal)

	require.True(t, decision.AffordableAmount.Valid)
	affordable := decision.AffordableAmount.Decimal
	assert.True(t, affordable.GreaterThan(d("1288814")) && affordable.LessThanOrEqual(d("1288815.85")), "got %s", affordable)

	var rejection *model.PolicyRejection
	require.ErrorAs(t, decision.Err(), &rejection)
	testutil.AssertDecimal(t, "1200000", rejection.Actual)
	testutil.AssertDecimal(t, "1000000", rejection.Threshold)
	assert.True(t, errors.Is(decision.Err(), model.ErrPolicyRejection))
}

func TestEvaluate_HardFloors(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		tenure     int
		mutate     func(*model.CustomerProfile)
		wantReason string
	}{
		{"income below minimum", "100000", 36, func(p *model.CustomerProfile) { p.MonthlySalary = d("24999.99") }, model.ReasonIncomeBelowMinimum},
		{"tenure above maximum", "100000", 84, nil, model.ReasonTenureExceedsMaximum},
		{"credit score below threshold", "100000", 36, func(p *model.CustomerProfile) { p.CreditScore = 699 }, model.ReasonCreditScoreBelowThreshold},
		{"income checked before credit score", "100000", 36, func(p *model.CustomerProfile) {
			p.MonthlySalary = d("20000")
			p.CreditScore = 600
		}, model.ReasonIncomeBelowMinimum},
		{"floors before limits", "5000000", 36, func(p *model.CustomerProfile) { p.CreditScore = 650 }, model.ReasonCreditScoreBelowThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile()
			if tt.mutate != nil {
				tt.mutate(&profile)
			}
			decision := evaluate(t, tt.amount, tt.tenure, profile)
			assert.True(t, decision.IsRejected())
			assert.Equal(t, tt.wantReason, decision.Reason)
			require.NotNil(t, decision.Rejection)
			assert.False(t, decision.SuggestedMaxAmount.Valid)
			assert.False(t, decision.AffordableAmount.Valid)
		})
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		tenure    int
		wantField string
	}{
		{"zero amount", "0", 36, "amount"},
		{"negative amount", "-1", 36, "amount"},
		{"zero tenure", "100000", 0, "tenure_months"},
		{"tenure not offered", "100000", 30, "tenure_months"},
		{"tenure above offer maximum", "100000", 72, "tenure_months"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.NewEligibilityEvaluator().Evaluate(
				model.LoanRequest{Amount: d(tt.amount), TenureMonths: tt.tenure}, testProfile())
			var ve *model.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestEvaluate_TierProperties(t *testing.T) {
	profile := testProfile()
	limit := profile.PreApprovedLimit
	step := d("12345.67")

	for amount := d("1000"); amount.LessThanOrEqual(d("1500000")); amount = amount.Add(step) {
		for _, tenure := range profile.AvailableTenures() {
			decision := evaluate(t, amount.String(), tenure, profile)
			switch {
			case amount.LessThanOrEqual(limit):
				assert.True(t, decision.IsInstant(), "amount %s", amount)
			case amount.LessThanOrEqual(limit.Mul(decimal.NewFromInt(2))):
				assert.True(t, decision.IsConditional(), "amount %s", amount)
				assert.False(t, decision.DisplayEMI.Valid)
			default:
				assert.True(t, decision.IsRejected(), "amount %s", amount)
				assert.True(t, decision.SuggestedMaxAmount.Decimal.Equal(limit.Mul(decimal.NewFromInt(2))))
			}
		}
	}
}

func TestEvaluate_SmallAmountsWithinLimitAreInstant(t *testing.T) {
	profile := testProfile()
	require.True(t, profile.MinLoanAmount.Equal(d("50000")))

	for _, amount := range []string{"30000", "49999.99", "1"} {
		decision := evaluate(t, amount, 12, profile)
		assert.True(t, decision.IsInstant(), "amount %s", amount)
		assert.Equal(t, model.ReasonWithinPreApprovedLimit, decision.Reason)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	a := evaluate(t, "1200000", 48, testProfile())
	b := evaluate(t, "1200000", 48, testProfile())
	assert.Equal(t, a, b)
}

func TestEvaluate_BoundaryAmounts(t *testing.T) {
	assert.True(t, evaluate(t, "500000", 12, testProfile()).IsInstant())
	assert.True(t, evaluate(t, "500000.01", 12, testProfile()).IsConditional())
	assert.True(t, evaluate(t, "1000000", 12, testProfile()).IsConditional())
	assert.True(t, evaluate(t, "1000000.01", 12, testProfile()).IsRejected())
}
