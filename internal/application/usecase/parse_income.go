package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/internal/domain/service"
)

// tierNone labels extraction attempts that found nothing.
const tierNone = "none"

// ParseIncomeUseCase extracts a salary figure from document text.
type ParseIncomeUseCase struct {
	parser  *service.IncomeDocumentParser
	metrics port.MetricsRecorder
	logger  *slog.Logger
}

// NewParseIncomeUseCase wires dependencies.
func NewParseIncomeUseCase(
	parser *service.IncomeDocumentParser,
	metrics port.MetricsRecorder,
	logger *slog.Logger,
) *ParseIncomeUseCase {
	return &ParseIncomeUseCase{parser: parser, metrics: metrics, logger: logger}
}

// Execute parses req.Text. The text itself is never logged.
func (uc *ParseIncomeUseCase) Execute(ctx context.Context, req dto.ParseIncomeRequest) (dto.IncomeResponse, error) {
	income, err := uc.parser.Parse(req.Text)
	if err != nil {
		uc.metrics.RecordIncomeExtraction(ctx, tierNone, false)
		return dto.IncomeResponse{}, fmt.Errorf("parse income: %w", err)
	}

	uc.metrics.RecordIncomeExtraction(ctx, income.ConfidenceTier.String(), income.Fallback)
	uc.logger.InfoContext(ctx, "income extracted",
		slog.Int("text_length", len(req.Text)),
		slog.String("confidence_tier", income.ConfidenceTier.String()),
		slog.Bool("fallback", income.Fallback),
		slog.Int("candidates", len(income.Candidates)),
	)
	return toIncomeResponse(income), nil
}
