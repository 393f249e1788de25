package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const aggregateType = "LoanApplication"

// Event type names published on the origination topic.
const (
	TypeApplicationStarted   = "origination.application.started"
	TypeApplicationInitiated = "origination.application.initiated"
	TypeIncomeVerified       = "origination.application.income_verified"
	TypeKYCVerified          = "origination.application.kyc_verified"
	TypeApplicationApproved  = "origination.application.approved"
	TypeApplicationRejected  = "origination.application.rejected"
	TypeSanctionGenerated    = "origination.sanction.generated"
	TypeSanctionAccepted     = "origination.sanction.accepted"
)

// ApplicationStarted is raised when a session opens an application.
type ApplicationStarted struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
}

func NewApplicationStarted(applicationID, customerID string, at time.Time) ApplicationStarted {
	return ApplicationStarted{
		BaseEvent:  events.NewBaseEvent(TypeApplicationStarted, applicationID, aggregateType, at),
		CustomerID: customerID,
	}
}

// ApplicationInitiated is raised when a loan request is recorded with its
// eligibility decision.
type ApplicationInitiated struct {
	events.BaseEvent
	CustomerID   string          `json:"customer_id"`
	Amount       decimal.Decimal `json:"amount"`
	TenureMonths int             `json:"tenure_months"`
	Purpose      string          `json:"purpose"`
	ApprovalType string          `json:"approval_type"`
	Reason       string          `json:"reason"`
}

func NewApplicationInitiated(
	applicationID, customerID string,
	amount decimal.Decimal, tenureMonths int, purpose, approvalType, reason string,
	at time.Time,
) ApplicationInitiated {
	return ApplicationInitiated{
		BaseEvent:    events.NewBaseEvent(TypeApplicationInitiated, applicationID, aggregateType, at),
		CustomerID:   customerID,
		Amount:       amount,
		TenureMonths: tenureMonths,
		Purpose:      purpose,
		ApprovalType: approvalType,
		Reason:       reason,
	}
}

// IncomeVerified is raised for every affordability check recorded,
// passing or not.
type IncomeVerified struct {
	events.BaseEvent
	CustomerID     string          `json:"customer_id"`
	VerifiedSalary decimal.Decimal `json:"verified_salary"`
	EMI            decimal.Decimal `json:"emi"`
	Ratio          decimal.Decimal `json:"ratio"`
	Passed         bool            `json:"passed"`
}

func NewIncomeVerified(
	applicationID, customerID string,
	verifiedSalary, emi, ratio decimal.Decimal, passed bool,
	at time.Time,
) IncomeVerified {
	return IncomeVerified{
		BaseEvent:      events.NewBaseEvent(TypeIncomeVerified, applicationID, aggregateType, at),
		CustomerID:     customerID,
		VerifiedSalary: verifiedSalary,
		EMI:            emi,
		Ratio:          ratio,
		Passed:         passed,
	}
}

// KYCVerified is raised when all identity checks pass.
type KYCVerified struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
}

func NewKYCVerified(applicationID, customerID string, at time.Time) KYCVerified {
	return KYCVerified{
		BaseEvent:  events.NewBaseEvent(TypeKYCVerified, applicationID, aggregateType, at),
		CustomerID: customerID,
	}
}

// ApplicationApproved is raised when an application is approved.
type ApplicationApproved struct {
	events.BaseEvent
	CustomerID        string          `json:"customer_id"`
	ApprovalReference string          `json:"approval_reference"`
	ApprovalType      string          `json:"approval_type"`
	Amount            decimal.Decimal `json:"amount"`
}

func NewApplicationApproved(
	applicationID, customerID, reference, approvalType string,
	amount decimal.Decimal, at time.Time,
) ApplicationApproved {
	return ApplicationApproved{
		BaseEvent:         events.NewBaseEvent(TypeApplicationApproved, applicationID, aggregateType, at),
		CustomerID:        customerID,
		ApprovalReference: reference,
		ApprovalType:      approvalType,
		Amount:            amount,
	}
}

// ApplicationRejected is raised when an application is rejected.
type ApplicationRejected struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

func NewApplicationRejected(applicationID, customerID, reason string, at time.Time) ApplicationRejected {
	return ApplicationRejected{
		BaseEvent:  events.NewBaseEvent(TypeApplicationRejected, applicationID, aggregateType, at),
		CustomerID: customerID,
		Reason:     reason,
	}
}

// SanctionGenerated is raised when the sanction letter is issued.
type SanctionGenerated struct {
	events.BaseEvent
	CustomerID       string          `json:"customer_id"`
	Reference        string          `json:"reference"`
	SanctionedAmount decimal.Decimal `json:"sanctioned_amount"`
	EMI              decimal.Decimal `json:"emi"`
	NetDisbursement  decimal.Decimal `json:"net_disbursement"`
	ValidUntil       time.Time       `json:"valid_until"`
}

func NewSanctionGenerated(
	applicationID, customerID, reference string,
	amount, emi, net decimal.Decimal, validUntil, at time.Time,
) SanctionGenerated {
	return SanctionGenerated{
		BaseEvent:        events.NewBaseEvent(TypeSanctionGenerated, applicationID, aggregateType, at),
		CustomerID:       customerID,
		Reference:        reference,
		SanctionedAmount: amount,
		EMI:              emi,
		NetDisbursement:  net,
		ValidUntil:       validUntil,
	}
}

// SanctionAccepted is raised when the customer accepts the sanction letter.
type SanctionAccepted struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	Reference  string `json:"reference"`
}

func NewSanctionAccepted(applicationID, customerID, reference string, at time.Time) SanctionAccepted {
	return SanctionAccepted{
		BaseEvent:  events.NewBaseEvent(TypeSanctionAccepted, applicationID, aggregateType, at),
		CustomerID: customerID,
		Reference:  reference,
	}
}
