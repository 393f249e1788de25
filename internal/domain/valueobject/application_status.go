package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus is the lifecycle stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusNotStarted        = "NOT_STARTED"
	appStatusInitiated         = "INITIATED"
	appStatusKYCVerified       = "KYC_VERIFIED"
	appStatusApproved          = "APPROVED"
	appStatusRejected          = "REJECTED"
	appStatusSanctionGenerated = "SANCTION_GENERATED"
	appStatusSanctionAccepted  = "SANCTION_ACCEPTED"
)

var (
	ApplicationStatusNotStarted        = ApplicationStatus{value: appStatusNotStarted}
	ApplicationStatusInitiated         = ApplicationStatus{value: appStatusInitiated}
	ApplicationStatusKYCVerified       = ApplicationStatus{value: appStatusKYCVerified}
	ApplicationStatusApproved          = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusRejected          = ApplicationStatus{value: appStatusRejected}
	ApplicationStatusSanctionGenerated = ApplicationStatus{value: appStatusSanctionGenerated}
	ApplicationStatusSanctionAccepted  = ApplicationStatus{value: appStatusSanctionAccepted}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusNotStarted:        ApplicationStatusNotStarted,
	appStatusInitiated:         ApplicationStatusInitiated,
	appStatusKYCVerified:       ApplicationStatusKYCVerified,
	appStatusApproved:          ApplicationStatusApproved,
	appStatusRejected:          ApplicationStatusRejected,
	appStatusSanctionGenerated: ApplicationStatusSanctionGenerated,
	appStatusSanctionAccepted:  ApplicationStatusSanctionAccepted,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool { return s.value == other.value }

// IsPreApproval reports whether the application has not yet been decided.
// Only pre-approval applications may be rejected.
func (s ApplicationStatus) IsPreApproval() bool {
	switch s.value {
	case appStatusNotStarted, appStatusInitiated, appStatusKYCVerified:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s ApplicationStatus) IsTerminal() bool {
	return s.value == appStatusRejected || s.value == appStatusSanctionAccepted
}

func (s ApplicationStatus) MarshalText() ([]byte, error) { return []byte(s.value), nil }

func (s *ApplicationStatus) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = ApplicationStatus{}
		return nil
	}
	v, err := NewApplicationStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
