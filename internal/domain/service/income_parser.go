package service

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// amountToken matches a currency-shaped figure with an optional rupee prefix.
// The figure itself is the last capture group.
const amountToken = `(?:rs\.?|inr|₹)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`

const labelSeparator = `[\s:=\-]*`

// accountSuffix lets a credit label end in "account" or "a/c".
const accountSuffix = `(?:\s+(?:a/?c|account))?`

// FallbackLabel names candidates found without a salary label.
const FallbackLabel = "Unlabelled amount"

type incomePattern struct {
	re    *regexp.Regexp
	tier  valueobject.ConfidenceTier
	label string
	// qualified patterns capture an optional qualifier in group 1; a match
	// with the qualifier present belongs to a different label.
	qualified bool
}

func labelled(label string, tier valueobject.ConfidenceTier, expr string) incomePattern {
	return incomePattern{
		re:    regexp.MustCompile(`(?i)` + expr + labelSeparator + amountToken),
		tier:  tier,
		label: label,
	}
}

// incomePatterns are evaluated exhaustively; order only breaks exact ties.
var incomePatterns = []incomePattern{
	labelled("Net Pay (Take Home)", valueobject.ConfidenceVeryHigh, `net[\s\-]*pay\s*\(?\s*take[\s\-]*home\s*\)?`),
	labelled("Net Salary", valueobject.ConfidenceVeryHigh, `net[\s\-]*salary`),
	labelled("Take Home", valueobject.ConfidenceVeryHigh, `take[\s\-]*home(?:[\s\-]*pay)?`),
	{
		re:        regexp.MustCompile(`(?i)(total\s*)?net[\s\-]*pay` + labelSeparator + amountToken),
		tier:      valueobject.ConfidenceVeryHigh,
		label:     "Net Pay",
		qualified: true,
	},
	labelled("Salary Credit", valueobject.ConfidenceHigh, `salary\s*credit(?:ed)?(?:\s+to)?(?:\s+bank)?`+accountSuffix),
	labelled("Credit to Bank", valueobject.ConfidenceHigh, `credit(?:ed)?\s*to\s*bank`+accountSuffix),
	labelled("Total Net Pay", valueobject.ConfidenceMedium, `total\s*net\s*pay`),
	labelled("Gross Earnings", valueobject.ConfidenceLow, `gross\s*earnings`),
	labelled("Total Earnings", valueobject.ConfidenceLow, `total\s*earnings`),
	labelled("Gross Salary", valueobject.ConfidenceLow, `gross\s*salary`),
	labelled("Basic Salary", valueobject.ConfidenceVeryLow, `basic\s*(?:salary|pay)`),
}

var anyAmount = regexp.MustCompile(`(?i)` + amountToken)

// ---------------------------------------------------------------------------
// IncomeDocumentParser – confidence-ranked salary extraction
// ---------------------------------------------------------------------------

// IncomeDocumentParser picks a monthly salary figure out of document text
// that has already been extracted from the uploaded file.
type IncomeDocumentParser struct{}

// NewIncomeDocumentParser returns a new parser instance.
func NewIncomeDocumentParser() *IncomeDocumentParser {
	return &IncomeDocumentParser{}
}

// Parse scans text against every labelled pattern and keeps in-band figures
// (IncomeBandMin..IncomeBandMax). The best tier wins, then the larger
// amount, then the earlier position. With no labelled match the largest
// in-band figure anywhere is returned at low confidence with Fallback set.
// No in-band figure at all is an ExtractionFailure. Parse is deterministic.
func (p *IncomeDocumentParser) Parse(text string) (model.ExtractedIncome, error) {
	if strings.TrimSpace(text) == "" {
		return model.ExtractedIncome{}, &model.ExtractionFailure{TextLength: len(text), Reason: "document text is empty"}
	}

	candidates := labelledCandidates(text)
	fallback := false
	if len(candidates) == 0 {
		candidates = unlabelledCandidates(text)
		fallback = true
	}
	if len(candidates) == 0 {
		return model.ExtractedIncome{}, &model.ExtractionFailure{
			TextLength: len(text),
			Reason:     "no figure between " + model.IncomeBandMin.String() + " and " + model.IncomeBandMax.String(),
		}
	}

	rankCandidates(candidates)
	best := candidates[0]
	if len(candidates) > model.MaxIncomeCandidates {
		candidates = candidates[:model.MaxIncomeCandidates]
	}
	return model.ExtractedIncome{
		Amount:         best.Amount,
		ConfidenceTier: best.Tier,
		SourceLabel:    best.SourceLabel,
		Fallback:       fallback,
		Candidates:     slices.Clip(candidates),
	}, nil
}

func labelledCandidates(text string) []model.IncomeCandidate {
	var found []model.IncomeCandidate
	for _, pat := range incomePatterns {
		for _, m := range pat.re.FindAllStringSubmatchIndex(text, -1) {
			if pat.qualified && m[2] >= 0 {
				continue
			}
			amount, ok := parseAmount(text[m[len(m)-2]:m[len(m)-1]])
			if !ok {
				continue
			}
			found = appendCandidate(found, model.IncomeCandidate{
				Amount:      amount,
				Tier:        pat.tier,
				SourceLabel: pat.label,
				Offset:      m[0],
			})
		}
	}
	return found
}

func unlabelledCandidates(text string) []model.IncomeCandidate {
	var found []model.IncomeCandidate
	for _, m := range anyAmount.FindAllStringSubmatchIndex(text, -1) {
		amount, ok := parseAmount(text[m[2]:m[3]])
		if !ok {
			continue
		}
		found = appendCandidate(found, model.IncomeCandidate{
			Amount:      amount,
			Tier:        valueobject.ConfidenceLow,
			SourceLabel: FallbackLabel,
			Offset:      m[0],
		})
	}
	return found
}

// appendCandidate keeps one candidate per (amount, tier), the earliest.
func appendCandidate(found []model.IncomeCandidate, c model.IncomeCandidate) []model.IncomeCandidate {
	for i, existing := range found {
		if existing.Amount.Equal(c.Amount) && existing.Tier.Equal(c.Tier) {
			if c.Offset < existing.Offset {
				found[i] = c
			}
			return found
		}
	}
	return append(found, c)
}

func rankCandidates(cs []model.IncomeCandidate) {
	slices.SortStableFunc(cs, func(a, b model.IncomeCandidate) int {
		switch {
		case a.Tier.Outranks(b.Tier):
			return -1
		case b.Tier.Outranks(a.Tier):
			return 1
		}
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Offset, b.Offset)
	})
}

// parseAmount strips digit grouping and reports whether the figure lies in
// the plausible monthly-salary band.
func parseAmount(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	if d.LessThan(model.IncomeBandMin) || d.GreaterThan(model.IncomeBandMax) {
		return decimal.Zero, false
	}
	return d, true
}
