package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrValidation             = errors.New("validation error")
	ErrPolicyRejection        = errors.New("policy rejection")
	ErrPreconditionViolation  = errors.New("precondition violation")
	ErrExtractionFailure      = errors.New("income extraction failure")
	ErrUpstreamUnavailable    = errors.New("upstream unavailable")
	ErrInvariantViolation     = errors.New("invariant violation")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// ---------------------------------------------------------------------------
// ValidationError
// ---------------------------------------------------------------------------

// ValidationError reports a malformed request.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ---------------------------------------------------------------------------
// PolicyRejection
// ---------------------------------------------------------------------------

// PolicyRejection describes a well-formed request the rules decline. It
// carries the figure that failed, the threshold it failed against and, where
// computable, an amount the customer could be offered instead.
type PolicyRejection struct {
	Reason          string              `json:"reason"`
	Actual          decimal.Decimal     `json:"actual"`
	Threshold       decimal.Decimal     `json:"threshold"`
	SuggestedAmount decimal.NullDecimal `json:"suggested_amount"`
}

func (e *PolicyRejection) Error() string {
	msg := fmt.Sprintf("rejected: %s (actual %s, threshold %s)", e.Reason, e.Actual.String(), e.Threshold.String())
	if e.SuggestedAmount.Valid {
		msg += fmt.Sprintf("; suggested amount %s", e.SuggestedAmount.Decimal.StringFixed(2))
	}
	return msg
}

func (e *PolicyRejection) Is(target error) bool { return target == ErrPolicyRejection }

// ---------------------------------------------------------------------------
// PreconditionViolation
// ---------------------------------------------------------------------------

// UnmetCondition is one failed guard of a lifecycle transition.
type UnmetCondition struct {
	Check    string `json:"check"`
	Actual   string `json:"actual"`
	Required string `json:"required"`
}

// Lifecycle guard names.
const (
	CheckStatus             = "status"
	CheckRequest            = "loan_request"
	CheckIdentityPhone      = "phone_verified"
	CheckIdentityAddress    = "address_verified"
	CheckIdentityPrimaryID  = "primary_id_verified"
	CheckIdentitySecondary  = "secondary_id_verified"
	CheckIdentityVerified   = "identity_verified"
	CheckCreditScore        = "credit_score"
	CheckApprovalType       = "approval_type"
	CheckAffordability      = "affordability_passed"
	CheckExplicitAcceptance = "explicit_acceptance"
	CheckSanctionValidity   = "sanction_valid_until"
	CheckSanctionOnce       = "sanction_not_generated"
)

// PreconditionViolation is returned when a lifecycle action's guards are not
// met. The application is left unchanged.
type PreconditionViolation struct {
	Action string           `json:"action"`
	Status string           `json:"status"`
	Unmet  []UnmetCondition `json:"unmet"`

	// Cause is the policy decision behind an eligibility guard, when any.
	Cause *PolicyRejection `json:"cause,omitempty"`
}

func (e *PreconditionViolation) Error() string {
	parts := make([]string, 0, len(e.Unmet))
	for _, u := range e.Unmet {
		parts = append(parts, fmt.Sprintf("%s (actual %s, required %s)", u.Check, u.Actual, u.Required))
	}
	return fmt.Sprintf("%s not allowed from %s: %s", e.Action, e.Status, strings.Join(parts, "; "))
}

// Is matches ErrPreconditionViolation, and ErrInvalidStatusTransition when
// the current status is among the unmet guards.
func (e *PreconditionViolation) Is(target error) bool {
	if target == ErrPreconditionViolation {
		return true
	}
	return target == valueobject.ErrInvalidStatusTransition && e.Failed(CheckStatus)
}

func (e *PreconditionViolation) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Failed reports whether the named guard is among the unmet ones.
func (e *PreconditionViolation) Failed(check string) bool {
	for _, u := range e.Unmet {
		if u.Check == check {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// ExtractionFailure, UpstreamUnavailable, InvariantViolation
// ---------------------------------------------------------------------------

// ExtractionFailure means no in-band salary figure was found in the text.
type ExtractionFailure struct {
	TextLength int
	Reason     string
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("no plausible monthly salary in %d characters of text: %s", e.TextLength, e.Reason)
}

func (e *ExtractionFailure) Is(target error) bool { return target == ErrExtractionFailure }

// UpstreamUnavailable wraps a failure of an external collaborator.
type UpstreamUnavailable struct {
	Service string
	Err     error
}

func (e *UpstreamUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *UpstreamUnavailable) Is(target error) bool { return target == ErrUpstreamUnavailable }
func (e *UpstreamUnavailable) Unwrap() error        { return e.Err }

// InvariantViolation is a fatal internal inconsistency. It is never retried
// or adjusted.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant %q violated: %s", e.Invariant, e.Detail)
}

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariantViolation }
