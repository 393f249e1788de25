package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// EvaluateEligibilityRequest asks for an eligibility decision without
// touching any application.
type EvaluateEligibilityRequest struct {
	CustomerID   string          `json:"customer_id"`
	Amount       decimal.Decimal `json:"amount"`
	TenureMonths int             `json:"tenure_months"`
}

// ParseIncomeRequest carries already-extracted document text.
type ParseIncomeRequest struct {
	Text string `json:"text"`
}

// VerifyIncomeDocumentRequest uploads an income proof for an application.
type VerifyIncomeDocumentRequest struct {
	ApplicationID string `json:"application_id"`
	Filename      string `json:"filename"`
	ContentType   string `json:"content_type"`
	Content       []byte `json:"content"`
}

// VerifyAffordabilityRequest re-checks an application's pending request
// against a verified salary. CustomerID may be given instead of
// ApplicationID; it resolves to the customer's latest open application.
type VerifyAffordabilityRequest struct {
	ApplicationID  string          `json:"application_id,omitempty"`
	CustomerID     string          `json:"customer_id,omitempty"`
	VerifiedSalary decimal.Decimal `json:"verified_salary"`
}

// StartApplicationRequest opens a session's application.
type StartApplicationRequest struct {
	CustomerID string `json:"customer_id"`
}

// TransitionRequest applies one lifecycle action. Only the payload fields
// the action uses are read.
type TransitionRequest struct {
	ApplicationID string `json:"application_id"`
	Action        string `json:"action"`

	// INITIATE
	Amount       decimal.Decimal `json:"amount,omitempty"`
	TenureMonths int             `json:"tenure_months,omitempty"`
	Purpose      string          `json:"purpose,omitempty"`
	// VERIFY_INCOME
	VerifiedSalary decimal.Decimal `json:"verified_salary,omitempty"`
	// REJECT
	Reason string `json:"reason,omitempty"`
	// ACCEPT_SANCTION
	Accepted bool `json:"accepted,omitempty"`
}

// GenerateSanctionRequest identifies an approved application.
type GenerateSanctionRequest struct {
	ApplicationID string `json:"application_id"`
}

// GetApplicationRequest identifies an application to retrieve.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

// ListApplicationsRequest lists a customer's applications.
type ListApplicationsRequest struct {
	CustomerID string `json:"customer_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RejectionResponse explains a policy rejection.
type RejectionResponse struct {
	Reason          string              `json:"reason"`
	Actual          decimal.Decimal     `json:"actual"`
	Threshold       decimal.Decimal     `json:"threshold"`
	SuggestedAmount decimal.NullDecimal `json:"suggested_amount"`
}

// EligibilityResponse is the external representation of an eligibility
// decision.
type EligibilityResponse struct {
	CustomerID         string              `json:"customer_id"`
	ApprovalType       string              `json:"approval_type"`
	Reason             string              `json:"reason"`
	RequestedAmount    decimal.Decimal     `json:"requested_amount"`
	TenureMonths       int                 `json:"tenure_months"`
	RequiredDocuments  []string            `json:"required_documents"`
	RiskCategory       string              `json:"risk_category"`
	SuggestedMaxAmount decimal.NullDecimal `json:"suggested_max_amount"`
	AffordableAmount   decimal.NullDecimal `json:"affordable_amount"`
	DisplayEMI         decimal.NullDecimal `json:"display_emi"`
	DisplayRatio       decimal.NullDecimal `json:"display_ratio"`
	AvailableTenures   []int               `json:"available_tenures"`
	MinLoanAmount      decimal.Decimal     `json:"min_loan_amount"`
	Rejection          *RejectionResponse  `json:"rejection,omitempty"`
}

// IncomeCandidateResponse is one ranked income figure.
type IncomeCandidateResponse struct {
	Amount         decimal.Decimal `json:"amount"`
	ConfidenceTier string          `json:"confidence_tier"`
	SourceLabel    string          `json:"source_label"`
}

// IncomeResponse is the external representation of an extracted income.
type IncomeResponse struct {
	Amount         decimal.Decimal           `json:"amount"`
	ConfidenceTier string                    `json:"confidence_tier"`
	SourceLabel    string                    `json:"source_label"`
	Fallback       bool                      `json:"fallback"`
	Candidates     []IncomeCandidateResponse `json:"candidates"`
}

// AffordabilityResponse is the external representation of an affordability
// check.
type AffordabilityResponse struct {
	ApplicationID     string              `json:"application_id"`
	Status            string              `json:"status"`
	VerifiedSalary    decimal.Decimal     `json:"verified_salary"`
	RequestedAmount   decimal.Decimal     `json:"requested_amount"`
	TenureMonths      int                 `json:"tenure_months"`
	EMI               decimal.Decimal     `json:"emi"`
	Ratio             decimal.Decimal     `json:"ratio"`
	Passed            bool                `json:"passed"`
	MaxEligibleAmount decimal.NullDecimal `json:"max_eligible_amount"`
	Income            *IncomeResponse     `json:"income,omitempty"`
	Rejection         *RejectionResponse  `json:"rejection,omitempty"`
}

// AuditEntryResponse represents one audit log entry.
type AuditEntryResponse struct {
	Sequence int               `json:"sequence"`
	Action   string            `json:"action"`
	Status   string            `json:"status"`
	At       time.Time         `json:"at"`
	Figures  map[string]string `json:"figures,omitempty"`
}

// AmortizationEntryResponse represents a single amortization schedule entry.
type AmortizationEntryResponse struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// SanctionLetterResponse is the external representation of a sanction
// letter. FormattedNetDisbursement is the rupee-formatted net amount and
// AmountInWords spells out the sanctioned amount.
type SanctionLetterResponse struct {
	Reference                string                      `json:"reference"`
	ApplicationID            string                      `json:"application_id"`
	CustomerID               string                      `json:"customer_id"`
	BorrowerName             string                      `json:"borrower_name"`
	Purpose                  string                      `json:"purpose"`
	SanctionedAmount         decimal.Decimal             `json:"sanctioned_amount"`
	InterestRate             decimal.Decimal             `json:"interest_rate"`
	TenureMonths             int                         `json:"tenure_months"`
	EMI                      decimal.Decimal             `json:"emi"`
	TotalInterest            decimal.Decimal             `json:"total_interest"`
	TotalRepayment           decimal.Decimal             `json:"total_repayment"`
	ProcessingFeePercent     decimal.Decimal             `json:"processing_fee_percent"`
	ProcessingFee            decimal.Decimal             `json:"processing_fee"`
	GST                      decimal.Decimal             `json:"gst"`
	NetDisbursement          decimal.Decimal             `json:"net_disbursement"`
	FormattedNetDisbursement string                      `json:"formatted_net_disbursement"`
	AmountInWords            string                      `json:"amount_in_words"`
	GeneratedAt              time.Time                   `json:"generated_at"`
	ValidUntil               time.Time                   `json:"valid_until"`
	FirstEMIDate             time.Time                   `json:"first_emi_date"`
	Schedule                 []AmortizationEntryResponse `json:"schedule,omitempty"`
}

// ApplicationResponse is the external representation of a loan application.
type ApplicationResponse struct {
	ID                string                  `json:"id"`
	CustomerID        string                  `json:"customer_id"`
	Amount            decimal.Decimal         `json:"amount"`
	TenureMonths      int                     `json:"tenure_months"`
	Purpose           string                  `json:"purpose,omitempty"`
	Status            string                  `json:"status"`
	ApprovalType      string                  `json:"approval_type,omitempty"`
	RequiredDocuments []string                `json:"required_documents,omitempty"`
	ApprovalReference string                  `json:"approval_reference,omitempty"`
	RejectionReason   string                  `json:"rejection_reason,omitempty"`
	Affordability     *AffordabilityResponse  `json:"affordability,omitempty"`
	Sanction          *SanctionLetterResponse `json:"sanction,omitempty"`
	AuditLog          []AuditEntryResponse    `json:"audit_log"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

// ApplicationListResponse lists a customer's applications, newest first.
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}
