package model

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/loan-origination/internal/domain/event"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// LoanApplication aggregate root
// ---------------------------------------------------------------------------

// LoanApplication is the one mutable record of a customer session. It is an
// immutable value: every transition returns a new copy and leaves the
// receiver untouched, so a failed transition never changes state.
type LoanApplication struct {
	id                string
	customerID        string
	profile           CustomerProfile
	request           LoanRequest
	status            valueobject.ApplicationStatus
	decision          *EligibilityDecision
	identity          *IdentityChecks
	affordability     *AffordabilityResult
	approvalReference string
	rejectionReason   string
	sanction          *SanctionLetter
	acceptedAt        time.Time
	auditLog          []AuditEntry
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	domainEvents      []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanApplication opens an application in NOT_STARTED for the profile's
// customer. The profile is snapshotted and never refreshed.
func NewLoanApplication(profile CustomerProfile, now time.Time) (LoanApplication, error) {
	if err := profile.Validate(); err != nil {
		return LoanApplication{}, err
	}

	id := uuid.NewString()
	app := LoanApplication{
		id:         id,
		customerID: profile.CustomerID,
		profile:    profile,
		status:     valueobject.ApplicationStatusNotStarted,
		createdAt:  now,
		updatedAt:  now,
	}
	app.domainEvents = append(app.domainEvents, event.NewApplicationStarted(id, profile.CustomerID, now))
	return app, nil
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Initiate records the loan request and its eligibility decision:
// NOT_STARTED -> INITIATED.
func (a LoanApplication) Initiate(req LoanRequest, decision EligibilityDecision, now time.Time) (LoanApplication, error) {
	if v := a.requireStatus(valueobject.ActionInitiate, valueobject.ApplicationStatusNotStarted); v != nil {
		return a, v
	}
	if err := validateInitiation(req, decision); err != nil {
		return a, err
	}
	if !decision.Matches(req) {
		return a, NewValidationError("eligibility_decision", "was evaluated for %s over %d months, request is %s over %d months",
			decision.RequestedAmount.StringFixed(2), decision.TenureMonths, req.Amount.StringFixed(2), req.TenureMonths)
	}

	next := a.begin(now)
	next.request = req
	d := decision
	next.decision = &d
	next.status = valueobject.ApplicationStatusInitiated
	next.appendAudit(valueobject.ActionInitiate, now, map[string]string{
		"amount":        req.Amount.StringFixed(2),
		"tenure_months": strconv.Itoa(req.TenureMonths),
		"approval_type": decision.ApprovalType.String(),
		"reason":        decision.Reason,
	})
	next.domainEvents = append(next.domainEvents, event.NewApplicationInitiated(
		a.id, a.customerID, req.Amount, req.TenureMonths, req.Purpose,
		decision.ApprovalType.String(), decision.Reason, now,
	))
	return next, nil
}

// VerifyKYC applies the identity-verification facts: INITIATED -> KYC_VERIFIED.
// Every failing check is named in the returned violation.
func (a LoanApplication) VerifyKYC(checks IdentityChecks, now time.Time) (LoanApplication, error) {
	if v := a.requireStatus(valueobject.ActionVerifyKYC, valueobject.ApplicationStatusInitiated); v != nil {
		return a, v
	}
	if failed := checks.Failed(); len(failed) > 0 {
		v := a.violation(valueobject.ActionVerifyKYC)
		for _, check := range failed {
			v.Unmet = append(v.Unmet, UnmetCondition{Check: check, Actual: "false", Required: "true"})
		}
		return a, v
	}

	next := a.begin(now)
	c := checks
	next.identity = &c
	next.status = valueobject.ApplicationStatusKYCVerified
	next.appendAudit(valueobject.ActionVerifyKYC, now, nil)
	next.domainEvents = append(next.domainEvents, event.NewKYCVerified(a.id, a.customerID, now))
	return next, nil
}

// RecordAffordability stores the latest affordability result for the pending
// request. The status does not change; only the latest result counts.
func (a LoanApplication) RecordAffordability(result AffordabilityResult, now time.Time) (LoanApplication, error) {
	if v := a.requireStatus(valueobject.ActionVerifyIncome,
		valueobject.ApplicationStatusInitiated, valueobject.ApplicationStatusKYCVerified); v != nil {
		return a, v
	}
	if !result.Matches(a.request) {
		v := a.violation(valueobject.ActionVerifyIncome)
		v.Unmet = append(v.Unmet, UnmetCondition{
			Check:    CheckRequest,
			Actual:   result.RequestedAmount.StringFixed(2) + " over " + strconv.Itoa(result.TenureMonths),
			Required: a.request.Amount.StringFixed(2) + " over " + strconv.Itoa(a.request.TenureMonths),
		})
		return a, v
	}

	next := a.begin(now)
	r := result
	next.affordability = &r
	next.appendAudit(valueobject.ActionVerifyIncome, now, map[string]string{
		"verified_salary": result.VerifiedSalary.StringFixed(2),
		"emi":             result.EMI.StringFixed(2),
		"ratio":           result.Ratio.StringFixed(4),
		"passed":          strconv.FormatBool(result.Passed),
	})
	next.domainEvents = append(next.domainEvents, event.NewIncomeVerified(
		a.id, a.customerID, result.VerifiedSalary, result.EMI, result.Ratio, result.Passed, now,
	))
	return next, nil
}

// CheckIncomeVerifiable reports, without changing anything, whether an
// affordability result could be recorded now.
func (a LoanApplication) CheckIncomeVerifiable() error {
	if v := a.requireStatus(valueobject.ActionVerifyIncome,
		valueobject.ApplicationStatusInitiated, valueobject.ApplicationStatusKYCVerified); v != nil {
		return v
	}
	return nil
}

// Approve moves KYC_VERIFIED -> APPROVED. It requires passed identity checks,
// a credit score of at least MinimumCreditScore, a non-rejected eligibility
// decision and, for conditional decisions, a passing latest affordability
// result. All unmet guards are reported together.
func (a LoanApplication) Approve(reference string, now time.Time) (LoanApplication, error) {
	if strings.TrimSpace(reference) == "" {
		return a, NewValidationError("approval_reference", "is required")
	}

	v := a.violation(valueobject.ActionApprove)
	if !a.status.Equal(valueobject.ApplicationStatusKYCVerified) {
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckStatus, Actual: a.status.String(), Required: valueobject.ApplicationStatusKYCVerified.String()})
	}
	if a.identity == nil || !a.identity.Passed() {
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckIdentityVerified, Actual: "false", Required: "true"})
	}
	if a.profile.CreditScore < MinimumCreditScore {
		v.Unmet = append(v.Unmet, UnmetCondition{
			Check: CheckCreditScore, Actual: strconv.Itoa(a.profile.CreditScore), Required: ">= " + strconv.Itoa(MinimumCreditScore),
		})
	}
	switch {
	case a.decision == nil:
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckApprovalType, Actual: "not evaluated", Required: "INSTANT or CONDITIONAL"})
	case a.decision.IsRejected():
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckApprovalType, Actual: a.decision.ApprovalType.String(), Required: "INSTANT or CONDITIONAL"})
		v.Cause = a.decision.Rejection
	case a.decision.IsConditional():
		switch {
		case a.affordability == nil:
			v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckAffordability, Actual: "not computed", Required: "true"})
		case !a.affordability.Passed:
			v.Unmet = append(v.Unmet, UnmetCondition{
				Check: CheckAffordability, Actual: "false (ratio " + a.affordability.Ratio.StringFixed(4) + ")", Required: "true",
			})
			v.Cause = a.affordability.Rejection()
		}
	}
	if len(v.Unmet) > 0 {
		return a, v
	}

	next := a.begin(now)
	next.status = valueobject.ApplicationStatusApproved
	next.approvalReference = reference
	next.appendAudit(valueobject.ActionApprove, now, map[string]string{
		"approval_reference": reference,
		"approval_type":      a.decision.ApprovalType.String(),
		"amount":             a.request.Amount.StringFixed(2),
	})
	next.domainEvents = append(next.domainEvents, event.NewApplicationApproved(
		a.id, a.customerID, reference, a.decision.ApprovalType.String(), a.request.Amount, now,
	))
	return next, nil
}

// Reject ends the application from any pre-approval status. REJECTED is
// terminal.
func (a LoanApplication) Reject(reason string, now time.Time) (LoanApplication, error) {
	if !a.status.IsPreApproval() {
		v := a.violation(valueobject.ActionReject)
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckStatus, Actual: a.status.String(), Required: "NOT_STARTED, INITIATED or KYC_VERIFIED"})
		return a, v
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return a, NewValidationError("reason", "is required")
	}

	next := a.begin(now)
	next.status = valueobject.ApplicationStatusRejected
	next.rejectionReason = reason
	next.appendAudit(valueobject.ActionReject, now, map[string]string{"reason": reason})
	next.domainEvents = append(next.domainEvents, event.NewApplicationRejected(a.id, a.customerID, reason, now))
	return next, nil
}

// AttachSanction stores the sanction letter: APPROVED -> SANCTION_GENERATED.
// A letter whose arithmetic does not hold is an InvariantViolation.
func (a LoanApplication) AttachSanction(letter SanctionLetter, now time.Time) (LoanApplication, error) {
	if v := a.requireStatus(valueobject.ActionGenerateSanction, valueobject.ApplicationStatusApproved); v != nil {
		return a, v
	}
	if a.sanction != nil {
		v := a.violation(valueobject.ActionGenerateSanction)
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckSanctionOnce, Actual: a.sanction.Reference, Required: "none"})
		return a, v
	}
	if letter.ApplicationID != a.id || !letter.SanctionedAmount.Equal(a.request.Amount) || letter.TenureMonths != a.request.TenureMonths {
		return a, &InvariantViolation{
			Invariant: "sanction_matches_application",
			Detail:    "letter " + letter.Reference + " does not match application " + a.id,
		}
	}
	if err := letter.CheckInvariants(); err != nil {
		return a, err
	}

	next := a.begin(now)
	l := letter.clone()
	next.sanction = &l
	next.status = valueobject.ApplicationStatusSanctionGenerated
	next.appendAudit(valueobject.ActionGenerateSanction, now, map[string]string{
		"reference":        letter.Reference,
		"emi":              letter.EMI.StringFixed(2),
		"processing_fee":   letter.ProcessingFee.StringFixed(2),
		"gst":              letter.GST.StringFixed(2),
		"net_disbursement": letter.NetDisbursement.StringFixed(2),
		"valid_until":      letter.ValidUntil.Format(time.RFC3339),
	})
	next.domainEvents = append(next.domainEvents, event.NewSanctionGenerated(
		a.id, a.customerID, letter.Reference,
		letter.SanctionedAmount, letter.EMI, letter.NetDisbursement, letter.ValidUntil, now,
	))
	return next, nil
}

// AcceptSanction records the customer's explicit acceptance within the
// validity window: SANCTION_GENERATED -> SANCTION_ACCEPTED.
func (a LoanApplication) AcceptSanction(accepted bool, now time.Time) (LoanApplication, error) {
	if v := a.requireStatus(valueobject.ActionAcceptSanction, valueobject.ApplicationStatusSanctionGenerated); v != nil {
		return a, v
	}
	v := a.violation(valueobject.ActionAcceptSanction)
	if !accepted {
		v.Unmet = append(v.Unmet, UnmetCondition{Check: CheckExplicitAcceptance, Actual: "false", Required: "true"})
	}
	if a.sanction.IsExpired(now) {
		v.Unmet = append(v.Unmet, UnmetCondition{
			Check: CheckSanctionValidity, Actual: now.Format(time.RFC3339), Required: "<= " + a.sanction.ValidUntil.Format(time.RFC3339),
		})
	}
	if len(v.Unmet) > 0 {
		return a, v
	}

	next := a.begin(now)
	next.status = valueobject.ApplicationStatusSanctionAccepted
	next.acceptedAt = now
	next.appendAudit(valueobject.ActionAcceptSanction, now, map[string]string{"reference": a.sanction.Reference})
	next.domainEvents = append(next.domainEvents, event.NewSanctionAccepted(a.id, a.customerID, a.sanction.Reference, now))
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (a LoanApplication) ID() string                            { return a.id }
func (a LoanApplication) CustomerID() string                    { return a.customerID }
func (a LoanApplication) Profile() CustomerProfile              { return a.profile }
func (a LoanApplication) Request() LoanRequest                  { return a.request }
func (a LoanApplication) Status() valueobject.ApplicationStatus { return a.status }
func (a LoanApplication) ApprovalReference() string             { return a.approvalReference }
func (a LoanApplication) RejectionReason() string               { return a.rejectionReason }
func (a LoanApplication) AcceptedAt() time.Time                 { return a.acceptedAt }
func (a LoanApplication) Version() int                          { return a.version }
func (a LoanApplication) CreatedAt() time.Time                  { return a.createdAt }
func (a LoanApplication) UpdatedAt() time.Time                  { return a.updatedAt }
func (a LoanApplication) DomainEvents() []event.DomainEvent     { return a.domainEvents }

// Decision returns the eligibility decision recorded at initiation.
func (a LoanApplication) Decision() (EligibilityDecision, bool) {
	if a.decision == nil {
		return EligibilityDecision{}, false
	}
	d := *a.decision
	d.RequiredDocuments = slices.Clone(d.RequiredDocuments)
	return d, true
}

// Identity returns the identity checks applied at KYC verification.
func (a LoanApplication) Identity() (IdentityChecks, bool) {
	if a.identity == nil {
		return IdentityChecks{}, false
	}
	return *a.identity, true
}

// Affordability returns the latest affordability result.
func (a LoanApplication) Affordability() (AffordabilityResult, bool) {
	if a.affordability == nil {
		return AffordabilityResult{}, false
	}
	return *a.affordability, true
}

// Sanction returns the sanction letter once generated.
func (a LoanApplication) Sanction() (SanctionLetter, bool) {
	if a.sanction == nil {
		return SanctionLetter{}, false
	}
	return a.sanction.clone(), true
}

// AuditLog returns a copy of the audit log, oldest first.
func (a LoanApplication) AuditLog() []AuditEntry { return cloneAudit(a.auditLog) }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a LoanApplication) ClearEvents() LoanApplication {
	next := a
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// begin returns a copy ready for mutation with its own audit and event slices.
func (a LoanApplication) begin(now time.Time) LoanApplication {
	next := a
	next.updatedAt = now
	next.auditLog = cloneAudit(a.auditLog)
	next.domainEvents = copyEvents(a.domainEvents)
	return next
}

func (a *LoanApplication) appendAudit(action valueobject.LifecycleAction, now time.Time, figures map[string]string) {
	a.auditLog = append(a.auditLog, AuditEntry{
		Sequence: len(a.auditLog) + 1,
		Action:   action,
		Status:   a.status,
		At:       now,
		Figures:  figures,
	})
}

func (a LoanApplication) violation(action valueobject.LifecycleAction) *PreconditionViolation {
	return &PreconditionViolation{Action: action.String(), Status: a.status.String()}
}

func (a LoanApplication) requireStatus(action valueobject.LifecycleAction, allowed ...valueobject.ApplicationStatus) *PreconditionViolation {
	for _, s := range allowed {
		if a.status.Equal(s) {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = s.String()
	}
	v := a.violation(action)
	v.Unmet = []UnmetCondition{{Check: CheckStatus, Actual: a.status.String(), Required: strings.Join(names, " or ")}}
	return v
}

// validateInitiation accepts out-of-catalog tenures only when the decision
// already rejected them.
func validateInitiation(req LoanRequest, decision EligibilityDecision) error {
	if !decision.IsRejected() {
		return req.Validate()
	}
	if !req.Amount.IsPositive() {
		return NewValidationError("amount", "must be positive, got %s", req.Amount)
	}
	if req.TenureMonths <= 0 {
		return NewValidationError("tenure_months", "must be positive, got %d", req.TenureMonths)
	}
	return nil
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
