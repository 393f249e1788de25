package valueobject

import "fmt"

// ApprovalType is the outcome tier of an eligibility evaluation.
type ApprovalType struct {
	value string
}

const (
	approvalInstant     = "INSTANT"
	approvalConditional = "CONDITIONAL"
	approvalRejected    = "REJECTED"
)

var (
	ApprovalTypeInstant     = ApprovalType{value: approvalInstant}
	ApprovalTypeConditional = ApprovalType{value: approvalConditional}
	ApprovalTypeRejected    = ApprovalType{value: approvalRejected}
)

// NewApprovalType creates an ApprovalType from a raw string.
func NewApprovalType(s string) (ApprovalType, error) {
	switch s {
	case approvalInstant:
		return ApprovalTypeInstant, nil
	case approvalConditional:
		return ApprovalTypeConditional, nil
	case approvalRejected:
		return ApprovalTypeRejected, nil
	}
	return ApprovalType{}, fmt.Errorf("invalid approval type: %q", s)
}

func (a ApprovalType) String() string                { return a.value }
func (a ApprovalType) IsZero() bool                  { return a.value == "" }
func (a ApprovalType) Equal(other ApprovalType) bool { return a.value == other.value }

func (a ApprovalType) MarshalText() ([]byte, error) { return []byte(a.value), nil }

func (a *ApprovalType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = ApprovalType{}
		return nil
	}
	v, err := NewApprovalType(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
