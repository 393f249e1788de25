package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

func TestApplicationStatus_Parse(t *testing.T) {
	for _, s := range []string{"NOT_STARTED", "INITIATED", "KYC_VERIFIED", "APPROVED", "REJECTED", "SANCTION_GENERATED", "SANCTION_ACCEPTED"} {
		t.Run(s, func(t *testing.T) {
			st, err := valueobject.NewApplicationStatus(s)
			require.NoError(t, err)
			assert.Equal(t, s, st.String())
		})
	}

	_, err := valueobject.NewApplicationStatus("DISBURSED")
	assert.Error(t, err)
}

func TestApplicationStatus_Predicates(t *testing.T) {
	assert.True(t, valueobject.ApplicationStatusNotStarted.IsPreApproval())
	assert.True(t, valueobject.ApplicationStatusInitiated.IsPreApproval())
	assert.True(t, valueobject.ApplicationStatusKYCVerified.IsPreApproval())
	assert.False(t, valueobject.ApplicationStatusApproved.IsPreApproval())
	assert.False(t, valueobject.ApplicationStatusRejected.IsPreApproval())

	assert.True(t, valueobject.ApplicationStatusRejected.IsTerminal())
	assert.True(t, valueobject.ApplicationStatusSanctionAccepted.IsTerminal())
	assert.False(t, valueobject.ApplicationStatusSanctionGenerated.IsTerminal())
	assert.True(t, valueobject.ApplicationStatus{}.IsZero())
}

func TestConfidenceTier_Ordering(t *testing.T) {
	tiers := valueobject.ConfidenceTiers
	require.Len(t, tiers, 5)
	for i := 0; i < len(tiers)-1; i++ {
		assert.True(t, tiers[i].Outranks(tiers[i+1]), "%s should outrank %s", tiers[i], tiers[i+1])
		assert.False(t, tiers[i+1].Outranks(tiers[i]))
	}
	assert.False(t, valueobject.ConfidenceLow.Outranks(valueobject.ConfidenceLow))

	low, err := valueobject.NewConfidenceTier("low")
	require.NoError(t, err)
	assert.True(t, low.Equal(valueobject.ConfidenceLow))
	_, err = valueobject.NewConfidenceTier("certain")
	assert.Error(t, err)
}

func TestRiskCategoryForScore(t *testing.T) {
	tests := []struct {
		score int
		want  valueobject.RiskCategory
	}{
		{820, valueobject.RiskLow},
		{750, valueobject.RiskLow},
		{749, valueobject.RiskMedium},
		{700, valueobject.RiskMedium},
		{699, valueobject.RiskHigh},
		{650, valueobject.RiskHigh},
		{649, valueobject.RiskVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, valueobject.RiskCategoryForScore(tt.score), "score %d", tt.score)
	}
}

func TestValueObjects_TextRoundTrip(t *testing.T) {
	type envelope struct {
		Status   valueobject.ApplicationStatus `json:"status"`
		Approval valueobject.ApprovalType      `json:"approval"`
		Tier     valueobject.ConfidenceTier    `json:"tier"`
		Action   valueobject.LifecycleAction   `json:"action"`
		Risk     valueobject.RiskCategory      `json:"risk"`
	}
	in := envelope{
		Status:   valueobject.ApplicationStatusKYCVerified,
		Approval: valueobject.ApprovalTypeConditional,
		Tier:     valueobject.ConfidenceVeryHigh,
		Action:   valueobject.ActionVerifyKYC,
		Risk:     valueobject.RiskMedium,
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"KYC_VERIFIED","approval":"CONDITIONAL","tier":"very_high","action":"VERIFY_KYC","risk":"MEDIUM"}`, string(raw))

	var out envelope
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"LOST"}`), &out))
}
