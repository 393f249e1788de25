package valueobject

import "fmt"

// ConfidenceTier ranks how authoritative an extracted income figure is.
// The set is closed: very_high > high > medium > low > very_low.
type ConfidenceTier struct {
	value string
	rank  int
}

var (
	ConfidenceVeryHigh = ConfidenceTier{value: "very_high", rank: 5}
	ConfidenceHigh     = ConfidenceTier{value: "high", rank: 4}
	ConfidenceMedium   = ConfidenceTier{value: "medium", rank: 3}
	ConfidenceLow      = ConfidenceTier{value: "low", rank: 2}
	ConfidenceVeryLow  = ConfidenceTier{value: "very_low", rank: 1}
)

// ConfidenceTiers lists every tier from most to least authoritative.
var ConfidenceTiers = []ConfidenceTier{
	ConfidenceVeryHigh, ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceVeryLow,
}

// NewConfidenceTier creates a ConfidenceTier from its label.
func NewConfidenceTier(s string) (ConfidenceTier, error) {
	for _, t := range ConfidenceTiers {
		if t.value == s {
			return t, nil
		}
	}
	return ConfidenceTier{}, fmt.Errorf("invalid confidence tier: %q", s)
}

func (c ConfidenceTier) String() string                  { return c.value }
func (c ConfidenceTier) IsZero() bool                    { return c.value == "" }
func (c ConfidenceTier) Equal(other ConfidenceTier) bool { return c.value == other.value }

// Outranks reports whether c is strictly more authoritative than other.
func (c ConfidenceTier) Outranks(other ConfidenceTier) bool { return c.rank > other.rank }

func (c ConfidenceTier) MarshalText() ([]byte, error) { return []byte(c.value), nil }

func (c *ConfidenceTier) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ConfidenceTier{}
		return nil
	}
	v, err := NewConfidenceTier(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
