package valueobject

import "fmt"

// RiskCategory is a display band derived from a bureau credit score.
type RiskCategory struct {
	value string
}

var (
	RiskLow      = RiskCategory{value: "LOW"}
	RiskMedium   = RiskCategory{value: "MEDIUM"}
	RiskHigh     = RiskCategory{value: "HIGH"}
	RiskVeryHigh = RiskCategory{value: "VERY_HIGH"}
)

// RiskCategoryForScore bands a credit score: 750+ low, 700+ medium,
// 650+ high, anything lower very high.
func RiskCategoryForScore(score int) RiskCategory {
	switch {
	case score >= 750:
		return RiskLow
	case score >= 700:
		return RiskMedium
	case score >= 650:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// NewRiskCategory creates a RiskCategory from a raw string.
func NewRiskCategory(s string) (RiskCategory, error) {
	for _, r := range []RiskCategory{RiskLow, RiskMedium, RiskHigh, RiskVeryHigh} {
		if r.value == s {
			return r, nil
		}
	}
	return RiskCategory{}, fmt.Errorf("invalid risk category: %q", s)
}

func (r RiskCategory) String() string                { return r.value }
func (r RiskCategory) IsZero() bool                  { return r.value == "" }
func (r RiskCategory) Equal(other RiskCategory) bool { return r.value == other.value }

func (r RiskCategory) MarshalText() ([]byte, error) { return []byte(r.value), nil }

func (r *RiskCategory) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = RiskCategory{}
		return nil
	}
	v, err := NewRiskCategory(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
