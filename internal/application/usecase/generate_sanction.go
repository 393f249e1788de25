package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/loan-origination/internal/application/dto"
	"github.com/bibbank/loan-origination/internal/domain/model"
	"github.com/bibbank/loan-origination/internal/domain/valueobject"
)

// GenerateSanctionUseCase issues the sanction letter for an approved
// application. It is the GENERATE_SANCTION transition with the letter as
// its result.
type GenerateSanctionUseCase struct {
	transition *TransitionApplicationUseCase
}

// NewGenerateSanctionUseCase wires dependencies.
func NewGenerateSanctionUseCase(transition *TransitionApplicationUseCase) *GenerateSanctionUseCase {
	return &GenerateSanctionUseCase{transition: transition}
}

// Execute generates, attaches and returns the letter.
func (uc *GenerateSanctionUseCase) Execute(ctx context.Context, req dto.GenerateSanctionRequest) (dto.SanctionLetterResponse, error) {
	app, err := uc.transition.Execute(ctx, dto.TransitionRequest{
		ApplicationID: req.ApplicationID,
		Action:        valueobject.ActionGenerateSanction.String(),
	})
	if err != nil {
		return dto.SanctionLetterResponse{}, err
	}
	if app.Sanction == nil {
		return dto.SanctionLetterResponse{}, &model.InvariantViolation{
			Invariant: "sanction_attached",
			Detail:    fmt.Sprintf("application %s has status %s but no letter", app.ID, app.Status),
		}
	}
	return *app.Sanction, nil
}
