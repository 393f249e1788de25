package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// IncomeCandidate is one in-band figure found in a document.
type IncomeCandidate struct {
	Amount      decimal.Decimal            `json:"amount"`
	Tier        valueobject.ConfidenceTier `json:"confidence_tier"`
	SourceLabel string                     `json:"source_label"`
	Offset      int                        `json:"offset"`
}

// ExtractedIncome is the parser's selection plus the ranked candidates it
// chose from (at most MaxIncomeCandidates).
type ExtractedIncome struct {
	Amount         decimal.Decimal            `json:"amount"`
	ConfidenceTier valueobject.ConfidenceTier `json:"confidence_tier"`
	SourceLabel    string                     `json:"source_label"`
	Fallback       bool                       `json:"fallback"`
	Candidates     []IncomeCandidate          `json:"candidates"`
}
