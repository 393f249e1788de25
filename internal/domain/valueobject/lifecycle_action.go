package valueobject

import "fmt"

// LifecycleAction names a step recorded in an application's audit log.
type LifecycleAction struct {
	value string
}

var (
	ActionInitiate         = LifecycleAction{value: "INITIATE"}
	ActionVerifyKYC        = LifecycleAction{value: "VERIFY_KYC"}
	ActionVerifyIncome     = LifecycleAction{value: "VERIFY_INCOME"}
	ActionApprove          = LifecycleAction{value: "APPROVE"}
	ActionReject           = LifecycleAction{value: "REJECT"}
	ActionGenerateSanction = LifecycleAction{value: "GENERATE_SANCTION"}
	ActionAcceptSanction   = LifecycleAction{value: "ACCEPT_SANCTION"}
)

var allActions = []LifecycleAction{
	ActionInitiate, ActionVerifyKYC, ActionVerifyIncome, ActionApprove,
	ActionReject, ActionGenerateSanction, ActionAcceptSanction,
}

// NewLifecycleAction creates a LifecycleAction from a raw string.
func NewLifecycleAction(s string) (LifecycleAction, error) {
	for _, a := range allActions {
		if a.value == s {
			return a, nil
		}
	}
	return LifecycleAction{}, fmt.Errorf("invalid lifecycle action: %q", s)
}

func (a LifecycleAction) String() string                   { return a.value }
func (a LifecycleAction) IsZero() bool                     { return a.value == "" }
func (a LifecycleAction) Equal(other LifecycleAction) bool { return a.value == other.value }

func (a LifecycleAction) MarshalText() ([]byte, error) { return []byte(a.value), nil }

func (a *LifecycleAction) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = LifecycleAction{}
		return nil
	}
	v, err := NewLifecycleAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
