package model_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/pkg/testutil"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		term      int
		wantEMI   string
	}{
		{"500k at 11.5% for 36", "500000", "11.5", 36, "16488.00"},
		{"500k at 11.5% for 60", "500000", "11.5", 60, "10996.30"},
		{"700k at 11.5% for 60", "700000", "11.5", 60, "15394.83"},
		{"100k at 12% for 12", "100000", "12", 12, "8884.88"},
		{"300k at 12% for 36", "300000", "12", 36, "9964.29"},
		{"zero rate", "12000", "0", 12, "1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.CalculateEMI(d(tt.principal), d(tt.rate), tt.term)
			require.NoError(t, err)
			testutil.AssertDecimal(t, tt.wantEMI, got.Rounded().EMI)
		})
	}
}

func TestCalculateEMI_TotalsAreConsistent(t *testing.T) {
	principals := []string{"1", "50000", "500000", "1400000", "35000000"}
	rates := []string{"0", "0.5", "10.99", "11.5", "24"}
	for _, p := range principals {
		for _, r := range rates {
			for term := 1; term <= 72; term += 7 {
				t.Run(fmt.Sprintf("%s@%s/%d", p, r, term), func(t *testing.T) {
					got, err := model.CalculateEMI(d(p), d(r), term)
					require.NoError(t, err)

					n := decimal.NewFromInt(int64(term))
					assert.True(t, got.TotalPayment.Equal(got.EMI.Mul(n)), "total payment must equal emi x term")
					assert.True(t, got.TotalInterest.Equal(got.TotalPayment.Sub(d(p))), "interest must equal total minus principal")
					if r != "0" {
						assert.True(t, got.TotalInterest.IsPositive(), "interest must be positive")
					}
				})
			}
		}
	}
}

func TestCalculateEMI_ScenarioInterest(t *testing.T) {
	got, err := model.CalculateEMI(d("500000"), d("11.5"), 36)
	require.NoError(t, err)

	rounded := got.Rounded()
	testutil.AssertDecimal(t, "16488.00", rounded.EMI)
	testutil.AssertDecimal(t, "93568.12", rounded.TotalInterest)
	assert.True(t, rounded.EMI.Mul(decimal.NewFromInt(36)).Sub(d("500000")).Sub(rounded.TotalInterest).Abs().LessThan(d("0.5")))
}

func TestCalculateEMI_InvalidInput(t *testing.T) {
	_, err := model.CalculateEMI(decimal.Zero, d("11"), 12)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = model.CalculateEMI(d("1000"), d("-1"), 12)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = model.CalculateEMI(d("1000"), d("11"), 0)
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tenure_months", ve.Field)
}

func TestMaxPrincipalForEMI_InvertsCalculateEMI(t *testing.T) {
	p, err := model.MaxPrincipalForEMI(d("9800"), d("11"), 60)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "450731.73", p.Round(2))

	emi, err := model.CalculateEMI(p, d("11"), 60)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "9800.00", emi.EMI.Round(2))

	zero, err := model.MaxPrincipalForEMI(d("1000"), decimal.Zero, 12)
	require.NoError(t, err)
	testutil.AssertDecimal(t, "12000", zero)
}

func TestGenerateAmortizationSchedule(t *testing.T) {
	start := testutil.FixedNow
	schedule, err := model.GenerateAmortizationSchedule(d("500000"), d("11.5"), 36, start)
	require.NoError(t, err)
	require.Len(t, schedule, 36)

	first := schedule[0]
	assert.Equal(t, 1, first.Period)
	assert.Equal(t, start.AddDate(0, 1, 0), first.DueDate)
	testutil.AssertDecimal(t, "4791.67", first.Interest)
	testutil.AssertDecimal(t, "11696.33", first.Principal)

	sum := decimal.Zero
	for _, e := range schedule {
		sum = sum.Add(e.Principal)
		assert.True(t, e.Total.Equal(e.Principal.Add(e.Interest)))
	}
	testutil.AssertDecimal(t, "500000", sum)
	assert.True(t, schedule[len(schedule)-1].RemainingBalance.IsZero())
	assert.Equal(t, start.AddDate(0, 36, 0), schedule[35].DueDate)
}

func TestGenerateAmortizationSchedule_ZeroRate(t *testing.T) {
	schedule, err := model.GenerateAmortizationSchedule(d("12000"), decimal.Zero, 12, time.Time{})
	require.NoError(t, err)
	require.Len(t, schedule, 12)
	for _, e := range schedule {
		testutil.AssertDecimal(t, "1000", e.Principal)
		assert.True(t, e.Interest.IsZero())
	}
}
