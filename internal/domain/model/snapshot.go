package model

import (
	"slices"
	"time"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// ApplicationSnapshot is the storage form of a LoanApplication. Every
// repository persists this shape; pending domain events are not part of it.
type ApplicationSnapshot struct {
	ID                string                        `json:"id"`
	CustomerID        string                        `json:"customer_id"`
	Profile           CustomerProfile               `json:"profile"`
	Request           *LoanRequest                  `json:"request,omitempty"`
	Status            valueobject.ApplicationStatus `json:"status"`
	Decision          *EligibilityDecision          `json:"decision,omitempty"`
	Identity          *IdentityChecks               `json:"identity,omitempty"`
	Affordability     *AffordabilityResult          `json:"affordability,omitempty"`
	ApprovalReference string                        `json:"approval_reference,omitempty"`
	RejectionReason   string                        `json:"rejection_reason,omitempty"`
	Sanction          *SanctionLetter               `json:"sanction,omitempty"`
	AcceptedAt        *time.Time                    `json:"accepted_at,omitempty"`
	AuditLog          []AuditEntry                  `json:"audit_log"`
	Version           int                           `json:"version"`
	CreatedAt         time.Time                     `json:"created_at"`
	UpdatedAt         time.Time                     `json:"updated_at"`
}

// Snapshot captures the application for persistence.
func (a LoanApplication) Snapshot() ApplicationSnapshot {
	s := ApplicationSnapshot{
		ID:                a.id,
		CustomerID:        a.customerID,
		Profile:           a.profile,
		Status:            a.status,
		ApprovalReference: a.approvalReference,
		RejectionReason:   a.rejectionReason,
		AuditLog:          cloneAudit(a.auditLog),
		Version:           a.version,
		CreatedAt:         a.createdAt,
		UpdatedAt:         a.updatedAt,
	}
	if !a.request.IsZero() {
		r := a.request
		s.Request = &r
	}
	if d, ok := a.Decision(); ok {
		s.Decision = &d
	}
	if c, ok := a.Identity(); ok {
		s.Identity = &c
	}
	if r, ok := a.Affordability(); ok {
		s.Affordability = &r
	}
	if l, ok := a.Sanction(); ok {
		s.Sanction = &l
	}
	if !a.acceptedAt.IsZero() {
		at := a.acceptedAt
		s.AcceptedAt = &at
	}
	return s
}

// RestoreLoanApplication rebuilds an application from storage. It rejects
// snapshots whose recorded facts contradict their status.
func RestoreLoanApplication(s ApplicationSnapshot) (LoanApplication, error) {
	if s.ID == "" {
		return LoanApplication{}, &InvariantViolation{Invariant: "snapshot_id", Detail: "application id is empty"}
	}
	if s.Status.IsZero() {
		return LoanApplication{}, &InvariantViolation{Invariant: "snapshot_status", Detail: "application " + s.ID + " has no status"}
	}

	st := s.Status
	afterInitiation := !st.Equal(valueobject.ApplicationStatusNotStarted) &&
		!(st.Equal(valueobject.ApplicationStatusRejected) && s.Request == nil)
	if afterInitiation && (s.Request == nil || s.Decision == nil) {
		return LoanApplication{}, &InvariantViolation{
			Invariant: "snapshot_request", Detail: "application " + s.ID + " in " + st.String() + " has no request or decision",
		}
	}
	needsSanction := st.Equal(valueobject.ApplicationStatusSanctionGenerated) || st.Equal(valueobject.ApplicationStatusSanctionAccepted)
	if needsSanction && s.Sanction == nil {
		return LoanApplication{}, &InvariantViolation{
			Invariant: "snapshot_sanction", Detail: "application " + s.ID + " in " + st.String() + " has no sanction letter",
		}
	}

	a := LoanApplication{
		id:                s.ID,
		customerID:        s.CustomerID,
		profile:           s.Profile,
		status:            s.Status,
		approvalReference: s.ApprovalReference,
		rejectionReason:   s.RejectionReason,
		auditLog:          cloneAudit(s.AuditLog),
		version:           s.Version,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
	if s.Request != nil {
		a.request = *s.Request
	}
	if s.Decision != nil {
		d := *s.Decision
		d.RequiredDocuments = slices.Clone(d.RequiredDocuments)
		a.decision = &d
	}
	if s.Identity != nil {
		c := *s.Identity
		a.identity = &c
	}
	if s.Affordability != nil {
		r := *s.Affordability
		a.affordability = &r
	}
	if s.Sanction != nil {
		l := s.Sanction.clone()
		a.sanction = &l
	}
	if s.AcceptedAt != nil {
		a.acceptedAt = *s.AcceptedAt
	}
	return a, nil
}
